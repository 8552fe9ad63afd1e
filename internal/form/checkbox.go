package form

import (
    "encoding/json"
    "strings"
)

// Checkbox is a boolean bound from an HTML checkbox.  Browsers send "y" or
// "on" for a checked box and omit the field otherwise; JSON clients may
// send a real boolean.
type Checkbox bool

// UnmarshalParam implements echo.BindUnmarshaler.
func (c *Checkbox) UnmarshalParam(s string) error {
    *c = Checkbox(checked(s))
    return nil
}

func (c *Checkbox) UnmarshalJSON(b []byte) error {
    var v any
    if err := json.Unmarshal(b, &v); err != nil {
        return err
    }
    switch t := v.(type) {
    case bool:
        *c = Checkbox(t)
    case string:
        *c = Checkbox(checked(t))
    case float64:
        *c = t != 0
    default:
        *c = false
    }
    return nil
}

func (c Checkbox) Bool() bool { return bool(c) }

func checked(s string) bool {
    switch strings.ToLower(strings.TrimSpace(s)) {
    case "y", "yes", "on", "true", "1":
        return true
    }
    return false
}
