package schedulingv1

import "google.golang.org/protobuf/encoding/protowire"

type Empty struct{}

func (*Empty) Marshal() []byte { return nil }

func (*Empty) Unmarshal(b []byte) error {
	return walk(b, func(field) error { return nil })
}

type Profile struct {
	Name     string
	Email    string
	Headline string
	Location string
	Initials string
}

func (m *Profile) Marshal() []byte {
	var b []byte
	b = appendString(b, 1, m.Name)
	b = appendString(b, 2, m.Email)
	b = appendString(b, 3, m.Headline)
	b = appendString(b, 4, m.Location)
	b = appendString(b, 5, m.Initials)
	return b
}

func (m *Profile) Unmarshal(b []byte) error {
	return walk(b, func(f field) error {
		if f.Type != protowire.BytesType {
			return nil
		}
		switch f.Num {
		case 1:
			m.Name = f.text()
		case 2:
			m.Email = f.text()
		case 3:
			m.Headline = f.text()
		case 4:
			m.Location = f.text()
		case 5:
			m.Initials = f.text()
		}
		return nil
	})
}

type EventType struct {
	Title       string
	Description string
	Durations   []string
}

func (m *EventType) Marshal() []byte {
	var b []byte
	b = appendString(b, 1, m.Title)
	b = appendString(b, 2, m.Description)
	for _, d := range m.Durations {
		b = protowire.AppendTag(b, 3, protowire.BytesType)
		b = protowire.AppendString(b, d)
	}
	return b
}

func (m *EventType) Unmarshal(b []byte) error {
	return walk(b, func(f field) error {
		if f.Type != protowire.BytesType {
			return nil
		}
		switch f.Num {
		case 1:
			m.Title = f.text()
		case 2:
			m.Description = f.text()
		case 3:
			m.Durations = append(m.Durations, f.text())
		}
		return nil
	})
}

type ListEventTypesResponse struct {
	Events   []*EventType
	Host     *Profile
	Timezone string
}

func (m *ListEventTypesResponse) Marshal() []byte {
	var b []byte
	for _, e := range m.Events {
		b = appendMessage(b, 1, e)
	}
	if m.Host != nil {
		b = appendMessage(b, 2, m.Host)
	}
	b = appendString(b, 3, m.Timezone)
	return b
}

func (m *ListEventTypesResponse) Unmarshal(b []byte) error {
	return walk(b, func(f field) error {
		if f.Type != protowire.BytesType {
			return nil
		}
		switch f.Num {
		case 1:
			e := &EventType{}
			if err := e.Unmarshal(f.Bytes); err != nil {
				return err
			}
			m.Events = append(m.Events, e)
		case 2:
			m.Host = &Profile{}
			return m.Host.Unmarshal(f.Bytes)
		case 3:
			m.Timezone = f.text()
		}
		return nil
	})
}

type FieldError struct {
	Field   string
	Message string
}

func (m *FieldError) Marshal() []byte {
	var b []byte
	b = appendString(b, 1, m.Field)
	b = appendString(b, 2, m.Message)
	return b
}

func (m *FieldError) Unmarshal(b []byte) error {
	return walk(b, func(f field) error {
		switch {
		case f.Num == 1 && f.Type == protowire.BytesType:
			m.Field = f.text()
		case f.Num == 2 && f.Type == protowire.BytesType:
			m.Message = f.text()
		}
		return nil
	})
}

// State is the flattened wizard state.
type State struct {
	Step          string
	View          string
	EventTitle    string
	EventDuration string
	PendingDate   string
	SlotDate      string
	SlotTime      string
	EndTime       string
	Name          string
	Email         string
	Phone         string
	Notes         string
	FieldErrors   []*FieldError
	Summary       string
	Today         string
}

func (m *State) Marshal() []byte {
	var b []byte
	b = appendString(b, 1, m.Step)
	b = appendString(b, 2, m.View)
	b = appendString(b, 3, m.EventTitle)
	b = appendString(b, 4, m.EventDuration)
	b = appendString(b, 5, m.PendingDate)
	b = appendString(b, 6, m.SlotDate)
	b = appendString(b, 7, m.SlotTime)
	b = appendString(b, 8, m.EndTime)
	b = appendString(b, 9, m.Name)
	b = appendString(b, 10, m.Email)
	b = appendString(b, 11, m.Phone)
	b = appendString(b, 12, m.Notes)
	for _, fe := range m.FieldErrors {
		b = appendMessage(b, 13, fe)
	}
	b = appendString(b, 14, m.Summary)
	b = appendString(b, 15, m.Today)
	return b
}

func (m *State) Unmarshal(b []byte) error {
	strs := map[protowire.Number]*string{
		1: &m.Step, 2: &m.View, 3: &m.EventTitle, 4: &m.EventDuration,
		5: &m.PendingDate, 6: &m.SlotDate, 7: &m.SlotTime, 8: &m.EndTime,
		9: &m.Name, 10: &m.Email, 11: &m.Phone, 12: &m.Notes,
		14: &m.Summary, 15: &m.Today,
	}
	return walk(b, func(f field) error {
		if f.Type != protowire.BytesType {
			return nil
		}
		if p, ok := strs[f.Num]; ok {
			*p = f.text()
			return nil
		}
		if f.Num == 13 {
			fe := &FieldError{}
			if err := fe.Unmarshal(f.Bytes); err != nil {
				return err
			}
			m.FieldErrors = append(m.FieldErrors, fe)
		}
		return nil
	})
}

type StartSessionResponse struct {
	Token string
	State *State
}

func (m *StartSessionResponse) Marshal() []byte {
	var b []byte
	b = appendString(b, 1, m.Token)
	if m.State != nil {
		b = appendMessage(b, 2, m.State)
	}
	return b
}

func (m *StartSessionResponse) Unmarshal(b []byte) error {
	return walk(b, func(f field) error {
		if f.Type != protowire.BytesType {
			return nil
		}
		switch f.Num {
		case 1:
			m.Token = f.text()
		case 2:
			m.State = &State{}
			return m.State.Unmarshal(f.Bytes)
		}
		return nil
	})
}

type ApplyRequest struct {
	Op       string
	Event    string
	Duration string
	View     string
	Date     string
	Time     string
	Field    string
	Value    string
	WithForm bool
	Name     string
	Email    string
	Phone    string
	Notes    string
}

func (m *ApplyRequest) Marshal() []byte {
	var b []byte
	b = appendString(b, 1, m.Op)
	b = appendString(b, 2, m.Event)
	b = appendString(b, 3, m.Duration)
	b = appendString(b, 4, m.View)
	b = appendString(b, 5, m.Date)
	b = appendString(b, 6, m.Time)
	b = appendString(b, 7, m.Field)
	b = appendString(b, 8, m.Value)
	b = appendBool(b, 9, m.WithForm)
	b = appendString(b, 10, m.Name)
	b = appendString(b, 11, m.Email)
	b = appendString(b, 12, m.Phone)
	b = appendString(b, 13, m.Notes)
	return b
}

func (m *ApplyRequest) Unmarshal(b []byte) error {
	strs := map[protowire.Number]*string{
		1: &m.Op, 2: &m.Event, 3: &m.Duration, 4: &m.View, 5: &m.Date, 6: &m.Time,
		7: &m.Field, 8: &m.Value, 10: &m.Name, 11: &m.Email, 12: &m.Phone, 13: &m.Notes,
	}
	return walk(b, func(f field) error {
		switch {
		case f.Num == 9 && f.Type == protowire.VarintType:
			m.WithForm = f.boolean()
		case f.Type == protowire.BytesType:
			if p, ok := strs[f.Num]; ok {
				*p = f.text()
			}
		}
		return nil
	})
}

type Cell struct {
	Date       string
	Time       string
	InWindow   bool
	Selectable bool
	Selected   bool
	Today      bool
}

func (m *Cell) Marshal() []byte {
	var b []byte
	b = appendString(b, 1, m.Date)
	b = appendString(b, 2, m.Time)
	b = appendBool(b, 3, m.InWindow)
	b = appendBool(b, 4, m.Selectable)
	b = appendBool(b, 5, m.Selected)
	b = appendBool(b, 6, m.Today)
	return b
}

func (m *Cell) Unmarshal(b []byte) error {
	return walk(b, func(f field) error {
		switch f.Type {
		case protowire.BytesType:
			switch f.Num {
			case 1:
				m.Date = f.text()
			case 2:
				m.Time = f.text()
			}
		case protowire.VarintType:
			switch f.Num {
			case 3:
				m.InWindow = f.boolean()
			case 4:
				m.Selectable = f.boolean()
			case 5:
				m.Selected = f.boolean()
			case 6:
				m.Today = f.boolean()
			}
		}
		return nil
	})
}

type TimeSlot struct {
	Time      string
	Available bool
}

func (m *TimeSlot) Marshal() []byte {
	var b []byte
	b = appendString(b, 1, m.Time)
	b = appendBool(b, 2, m.Available)
	return b
}

func (m *TimeSlot) Unmarshal(b []byte) error {
	return walk(b, func(f field) error {
		switch {
		case f.Num == 1 && f.Type == protowire.BytesType:
			m.Time = f.text()
		case f.Num == 2 && f.Type == protowire.VarintType:
			m.Available = f.boolean()
		}
		return nil
	})
}

type ListSlotsResponse struct {
	Title string
	View  string
	Cells []*Cell
	Times []*TimeSlot
}

func (m *ListSlotsResponse) Marshal() []byte {
	var b []byte
	b = appendString(b, 1, m.Title)
	b = appendString(b, 2, m.View)
	for _, c := range m.Cells {
		b = appendMessage(b, 3, c)
	}
	for _, t := range m.Times {
		b = appendMessage(b, 4, t)
	}
	return b
}

func (m *ListSlotsResponse) Unmarshal(b []byte) error {
	return walk(b, func(f field) error {
		if f.Type != protowire.BytesType {
			return nil
		}
		switch f.Num {
		case 1:
			m.Title = f.text()
		case 2:
			m.View = f.text()
		case 3:
			c := &Cell{}
			if err := c.Unmarshal(f.Bytes); err != nil {
				return err
			}
			m.Cells = append(m.Cells, c)
		case 4:
			t := &TimeSlot{}
			if err := t.Unmarshal(f.Bytes); err != nil {
				return err
			}
			m.Times = append(m.Times, t)
		}
		return nil
	})
}

type DownloadInviteResponse struct {
	Filename    string
	ContentType string
	Data        []byte
}

func (m *DownloadInviteResponse) Marshal() []byte {
	var b []byte
	b = appendString(b, 1, m.Filename)
	b = appendString(b, 2, m.ContentType)
	b = appendBytes(b, 3, m.Data)
	return b
}

func (m *DownloadInviteResponse) Unmarshal(b []byte) error {
	return walk(b, func(f field) error {
		if f.Type != protowire.BytesType {
			return nil
		}
		switch f.Num {
		case 1:
			m.Filename = f.text()
		case 2:
			m.ContentType = f.text()
		case 3:
			m.Data = append([]byte(nil), f.Bytes...)
		}
		return nil
	})
}
