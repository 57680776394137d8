package model

import (
	"bytes"
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// OptInt is an integer column that may be absent. Aggregation reads it through
// OrZero; storage and JSON keep the null.
type OptInt struct {
	Int   int
	Valid bool
}

// Int wraps a present value.
func Int(v int) OptInt { return OptInt{Int: v, Valid: true} }

// OrZero returns the value, or 0 when absent.
func (o OptInt) OrZero() int {
	if !o.Valid {
		return 0
	}
	return o.Int
}

// Ptr returns nil when absent.
func (o OptInt) Ptr() *int {
	if !o.Valid {
		return nil
	}
	v := o.Int
	return &v
}

func (o *OptInt) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*o = OptInt{}
	case int64:
		*o = Int(int(v))
	case int32:
		*o = Int(int(v))
	case int:
		*o = Int(v)
	case float64:
		*o = Int(int(v))
	case []byte:
		return o.parse(string(v))
	case string:
		return o.parse(v)
	default:
		return fmt.Errorf("scan OptInt: unsupported type %T", src)
	}
	return nil
}

func (o *OptInt) parse(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		*o = OptInt{}
		return nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return fmt.Errorf("parse OptInt %q: %w", s, err)
	}
	*o = Int(n)
	return nil
}

func (o OptInt) Value() (driver.Value, error) {
	if !o.Valid {
		return nil, nil
	}
	return int64(o.Int), nil
}

func (o OptInt) MarshalJSON() ([]byte, error) {
	if !o.Valid {
		return []byte("null"), nil
	}
	return []byte(strconv.Itoa(o.Int)), nil
}

// UnmarshalJSON accepts null, a number, or a numeric string. Form posts send
// "" for untouched inputs, which decodes as absent.
func (o *OptInt) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*o = OptInt{}
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		return o.parse(s)
	}
	// Fractions and out-of-range values are rejected rather than truncated.
	n, err := strconv.Atoi(string(data))
	if err != nil {
		return fmt.Errorf("decode OptInt: %w", err)
	}
	*o = Int(n)
	return nil
}

// OptFloat is the float counterpart of OptInt, used for ratings and
// percentages.
type OptFloat struct {
	Float float64
	Valid bool
}

// Float wraps a present value.
func Float(v float64) OptFloat { return OptFloat{Float: v, Valid: true} }

// OrZero returns the value, or 0 when absent.
func (o OptFloat) OrZero() float64 {
	if !o.Valid {
		return 0
	}
	return o.Float
}

func (o *OptFloat) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*o = OptFloat{}
	case float64:
		*o = Float(v)
	case float32:
		*o = Float(float64(v))
	case int64:
		*o = Float(float64(v))
	case []byte:
		return o.parse(string(v))
	case string:
		return o.parse(v)
	default:
		return fmt.Errorf("scan OptFloat: unsupported type %T", src)
	}
	return nil
}

func (o *OptFloat) parse(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		*o = OptFloat{}
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("parse OptFloat %q: %w", s, err)
	}
	*o = Float(f)
	return nil
}

func (o OptFloat) Value() (driver.Value, error) {
	if !o.Valid {
		return nil, nil
	}
	return o.Float, nil
}

func (o OptFloat) MarshalJSON() ([]byte, error) {
	if !o.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(o.Float)
}

func (o *OptFloat) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*o = OptFloat{}
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		return o.parse(s)
	}
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return fmt.Errorf("decode OptFloat: %w", err)
	}
	*o = Float(f)
	return nil
}
