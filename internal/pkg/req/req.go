/*
Package req binds event payloads received over the socket to typed request records.
*/
package req

import (
	"bytes"
	"encoding/json"

	"relaychat/internal/pkg/errs"
)

// BindPayload decodes data into dst. A missing or null payload leaves dst untouched, so
// the caller's required-field validation decides whether that is acceptable. Unknown
// fields are ignored; trailing data after the JSON value is rejected.
func BindPayload(data []byte, dst any) *errs.CustomError {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil
	}

	decoder := json.NewDecoder(bytes.NewReader(trimmed))
	if err := decoder.Decode(dst); err != nil {
		return errs.NewError(errs.ErrInvalidJSONFormat)
	}

	if decoder.More() {
		return errs.NewError(errs.ErrExtraContentInBody)
	}

	return nil
}
