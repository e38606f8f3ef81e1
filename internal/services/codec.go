package services

import (
	"math"
	"reflect"
	"strconv"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/pkg/errors"

	"github.com/tradejournal/tradejournal-server/internal/model"
	"github.com/tradejournal/tradejournal-server/internal/store"
)

var (
	dateType     = reflect.TypeOf(model.Date{})
	floatType    = reflect.TypeOf(float64(0))
	floatPtrType = reflect.TypeOf((*float64)(nil))
	stringType   = reflect.TypeOf("")
	timeType     = reflect.TypeOf(time.Time{})
)

// dateHook keeps unparseable stored dates as raw text instead of failing.
func dateHook(from, to reflect.Type, data any) (any, error) {
	if to != dateType {
		return data, nil
	}
	switch v := data.(type) {
	case string:
		return model.LenientDate(v), nil
	case time.Time:
		return model.DateOf(v), nil
	}
	return data, nil
}

// numberHook treats non-numeric stored values as absent. NaN and infinities
// count as non-numeric.
func numberHook(from, to reflect.Type, data any) (any, error) {
	if to != floatPtrType && to != floatType {
		return data, nil
	}
	var absent any
	if to == floatType {
		absent = float64(0)
	}
	finite := func(f float64) any {
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return absent
		}
		return f
	}
	switch v := data.(type) {
	case float64:
		return finite(v), nil
	case float32:
		return finite(float64(v)), nil
	case int, int32, int64:
		return v, nil
	case string:
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return absent, nil
		}
		return finite(f), nil
	}
	return absent, nil
}

// timestampHook renders backend timestamps as RFC 3339 strings.
func timestampHook(from, to reflect.Type, data any) (any, error) {
	if to == stringType && from == timeType {
		return data.(time.Time).UTC().Format(time.RFC3339Nano), nil
	}
	return data, nil
}

// decode maps a stored document onto a model type using its json tags.
func decode[T any](doc store.Document) (T, error) {
	var out T
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "json",
		WeaklyTypedInput: true,
		Result:           &out,
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			dateHook,
			timestampHook,
			// numberHook may yield nil, so it must run last.
			numberHook,
		),
	})
	if err != nil {
		return out, errors.Wrap(err, "build decoder")
	}
	if err := dec.Decode(map[string]any(doc)); err != nil {
		return out, errors.Wrap(err, "decode document")
	}
	return out, nil
}
