package rest

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
)

// Interpret maps a raw response body to a call result:
//
//   - empty, null or non-JSON bodies fail with KindMalformedResponse
//   - an object with a non-null "error" member fails with KindRemote
//   - anything else is decoded (objects as map[string]any, numbers as
//     float64) and returned
//
// The HTTP status code plays no part.
func Interpret(raw []byte) (any, error) {
	v, err := interpret(raw)
	if err != nil {
		return nil, err
	}
	return v, nil
}

func interpret(raw []byte) (any, *Error) {
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil, newMalformedError(raw, nil)
	}

	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, newMalformedError(raw, err)
	}
	if v == nil {
		return nil, newMalformedError(raw, nil)
	}

	if obj, ok := v.(map[string]any); ok {
		if env, ok := obj["error"]; ok && env != nil {
			return nil, remoteFromEnvelope(env)
		}
	}
	return v, nil
}

func remoteFromEnvelope(env any) *Error {
	obj, ok := env.(map[string]any)
	if !ok {
		return newRemoteError(fmt.Sprint(env), 0)
	}
	var message string
	switch m := obj["message"].(type) {
	case nil:
	case string:
		message = m
	default:
		message = fmt.Sprint(m)
	}
	return newRemoteError(message, envelopeCode(obj["code"]))
}

func envelopeCode(v any) int {
	switch c := v.(type) {
	case float64:
		if c > math.MaxInt32 || c < math.MinInt32 {
			return 0
		}
		return int(c)
	case string:
		n, _ := strconv.Atoi(c)
		return n
	default:
		return 0
	}
}
