package storage

import "context"

// Dataset is the entire persisted state of the application as one logical
// document: users, bearer-token sessions, events, and RSVP registrations.
// The JSON shape (including camelCase keys) matches the db.json files the
// frontend tooling already knows how to inspect.
type Dataset struct {
	Users         []User            `json:"users"`
	Sessions      map[string]string `json:"sessions"`
	Events        []Event           `json:"events"`
	Registrations []Registration    `json:"registrations"`
}

// User is an identity record. PasswordHash never leaves the storage layer.
type User struct {
	ID           string `json:"id"`
	Email        string `json:"email"`
	FirstName    string `json:"firstName"`
	LastName     string `json:"lastName"`
	PasswordHash string `json:"passwordHash"`
}

// Event is the stored event record. Attendees is persisted only so older
// data files round-trip unchanged; it is dead data. The live count is always
// derived from Registrations at read time.
type Event struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Date        string `json:"date"`
	Time        string `json:"time"`
	Category    string `json:"category"`
	Attendees   int    `json:"attendees"`
	Manager     string `json:"manager"`
	CreatedBy   string `json:"createdBy"`
	Description string `json:"description"`
}

// Registration is a single RSVP fact. At most one per (eventId, userId) pair.
type Registration struct {
	EventID string `json:"eventId"`
	UserID  string `json:"userId"`
}

// NewDataset returns an empty but well-formed dataset.
func NewDataset() *Dataset {
	return &Dataset{
		Users:         []User{},
		Sessions:      map[string]string{},
		Events:        []Event{},
		Registrations: []Registration{},
	}
}

// Normalize fills in nil collections so callers never have to nil-check.
// Older data files may omit empty collections entirely.
func (d *Dataset) Normalize() {
	if d.Users == nil {
		d.Users = []User{}
	}
	if d.Sessions == nil {
		d.Sessions = map[string]string{}
	}
	if d.Events == nil {
		d.Events = []Event{}
	}
	if d.Registrations == nil {
		d.Registrations = []Registration{}
	}
}

// Clone returns a deep copy, so stores can hand out snapshots without
// sharing mutable state with callers.
func (d *Dataset) Clone() *Dataset {
	out := &Dataset{
		Users:         make([]User, len(d.Users)),
		Sessions:      make(map[string]string, len(d.Sessions)),
		Events:        make([]Event, len(d.Events)),
		Registrations: make([]Registration, len(d.Registrations)),
	}
	copy(out.Users, d.Users)
	copy(out.Events, d.Events)
	copy(out.Registrations, d.Registrations)
	for token, userID := range d.Sessions {
		out.Sessions[token] = userID
	}
	return out
}

// UserByID returns the user with the given id, if any.
func (d *Dataset) UserByID(id string) (User, bool) {
	for _, u := range d.Users {
		if u.ID == id {
			return u, true
		}
	}
	return User{}, false
}

// UserByEmail returns the user with the given email. Matching is an exact,
// case-sensitive byte comparison.
func (d *Dataset) UserByEmail(email string) (User, bool) {
	for _, u := range d.Users {
		if u.Email == email {
			return u, true
		}
	}
	return User{}, false
}

// EventIndex returns the index of the event with the given id, or -1.
func (d *Dataset) EventIndex(id string) int {
	for i, e := range d.Events {
		if e.ID == id {
			return i
		}
	}
	return -1
}

// Store is the durable holder of the dataset. Load returns a snapshot;
// missing or corrupt backing data yields an empty dataset rather than an
// error so first-run bootstrapping succeeds silently. Save atomically
// replaces the whole document.
//
// Update runs a load-mutate-save cycle. Each driver serializes Update calls
// so two concurrent mutations cannot silently lose one another's writes
// within a single process; cross-process isolation depends on the driver
// (the postgres driver takes a row lock, the file driver does not).
type Store interface {
	Load(ctx context.Context) (*Dataset, error)
	Save(ctx context.Context, ds *Dataset) error
	Update(ctx context.Context, fn func(*Dataset) error) error
	View(ctx context.Context, fn func(*Dataset) error) error
	Close() error
}
