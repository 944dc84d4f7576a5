package types

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// ItemID identifies a rendered list item. The service uses integer primary
// keys; ids that parse as integers travel as JSON numbers.
type ItemID string

func IDFromInt(n int64) ItemID {
	return ItemID(strconv.FormatInt(n, 10))
}

func (id ItemID) String() string {
	return string(id)
}

func (id ItemID) Int() (int64, bool) {
	n, err := strconv.ParseInt(strings.TrimSpace(string(id)), 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

// MarshalJSON emits a number only for canonical integers, so "007" keeps
// its leading zeros.
func (id ItemID) MarshalJSON() ([]byte, error) {
	if n, ok := id.Int(); ok && strconv.FormatInt(n, 10) == string(id) {
		return []byte(strconv.FormatInt(n, 10)), nil
	}
	return json.Marshal(string(id))
}

func (id *ItemID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ItemID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*id = ItemID(n.String())
	return nil
}
