package types

import (
	"encoding/json"
	"errors"
	"strconv"
)

// Browser form handlers send every field as a string, while JSON
// clients send native types. These wrappers accept both.

type BoolOrString bool

func (b *BoolOrString) UnmarshalJSON(data []byte) error {
	var asBool bool
	if err := json.Unmarshal(data, &asBool); err == nil {
		*b = BoolOrString(asBool)
		return nil
	}

	var asStr string
	if err := json.Unmarshal(data, &asStr); err == nil {
		parsed, err := strconv.ParseBool(asStr)
		if err != nil {
			return err
		}
		*b = BoolOrString(parsed)
		return nil
	}

	return errors.New("invalid bool or string")
}

type FloatOrString float64

func (f *FloatOrString) UnmarshalJSON(data []byte) error {
	var asFloat float64
	if err := json.Unmarshal(data, &asFloat); err == nil {
		*f = FloatOrString(asFloat)
		return nil
	}

	var asStr string
	if err := json.Unmarshal(data, &asStr); err == nil {
		parsed, err := strconv.ParseFloat(asStr, 64)
		if err != nil {
			return err
		}
		*f = FloatOrString(parsed)
		return nil
	}

	return errors.New("invalid float or string")
}
