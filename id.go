package taskflow

import (
	"encoding/json"
	"errors"
	"strconv"
	"strings"
)

// ErrZeroID is returned by marshalling or unmarshalling JSON. If one uses NewID passing non-zero values and
// NewStringID passing non-empty strings to construct ID values, this error won't happen.
var ErrZeroID = errors.New("both numeric and string id are zero")

// ID represents either a numeric or a string identifier, as assigned by the server when a todo is created.
// Some servers hand out integers, others strings, so the todo's id property can be either.  Custom JSON
// marshal and unmarshal methods take care of choosing the right representation based on which field of the
// struct is actually set.  Two ids are equal only if they have the same representation, i.e., NewID(1) and
// NewStringID("1") are different ids.
type ID struct {
	num int64
	str string
}

func NewID(value int64) ID {
	return ID{num: value}
}

func NewStringID(value string) ID {
	return ID{str: value}
}

// ParseID turns user-supplied text into an ID. Text made of digits only becomes a numeric id, anything else
// a string id. When the representation the server uses is unknown, prefer State.Lookup, which matches on
// the printed form.
func ParseID(text string) (ID, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return ID{}, ErrZeroID
	}
	if n, err := strconv.ParseInt(text, 10, 64); err == nil {
		if n == 0 {
			return ID{}, ErrZeroID
		}
		return NewID(n), nil
	}
	return NewStringID(text), nil
}

// IsZero reports whether the id has neither a numeric nor a string value.
func (id ID) IsZero() bool {
	return id.num == 0 && id.str == ""
}

func (id ID) String() string {
	if id.num != 0 {
		return strconv.FormatInt(id.num, 10)
	}
	return id.str
}

// MarshalJSON implements json.Marshaler.
func (id ID) MarshalJSON() ([]byte, error) {
	if id.IsZero() {
		return nil, ErrZeroID
	}
	if id.num != 0 {
		return json.Marshal(id.num)
	}
	return json.Marshal(id.str)
}

// UnmarshalJSON implements json.Unmarshaler.
func (id *ID) UnmarshalJSON(b []byte) error {
	if len(b) > 0 && b[0] == '"' {
		if err := json.Unmarshal(b, &id.str); err != nil {
			return err
		}
		if len(id.str) == 0 {
			return ErrZeroID
		}
		return nil
	}
	if err := json.Unmarshal(b, &id.num); err != nil {
		return err
	}
	if id.num == 0 {
		return ErrZeroID
	}
	return nil
}
