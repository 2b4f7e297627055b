package validator

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"
	"tablebook/shared/failure"

	val "github.com/go-playground/validator/v10"
)

var validate *val.Validate

func init() {
	validate = val.New(val.WithRequiredStructEnabled())
}

// Validate reads from the given io.Reader into the given struct, and then performs validation
// on the struct using the validator package. If the struct is invalid according to the
// validation rules, an error is returned. Otherwise, nil is returned.
// https://github.com/go-playground/validator
func Validate[T any](r io.Reader, data *T) error {
	decoder := json.NewDecoder(r)
	err := decoder.Decode(data)

	if err != nil {
		return failure.BadRequest(fmt.Errorf("failed to decode request body: %w", err)) //nolint:wrapcheck
	}

	return ValidateStruct(data)
}

// ValidateKnownFields behaves like Validate but first rejects payloads carrying
// fields outside the allowed set, reporting the offenders by name.
func ValidateKnownFields[T any](r io.Reader, data *T, allowed map[string]struct{}) error {
	body, err := io.ReadAll(r)
	if err != nil {
		return failure.BadRequest(fmt.Errorf("failed to read request body: %w", err)) //nolint:wrapcheck
	}

	raw := map[string]json.RawMessage{}
	if err := json.Unmarshal(body, &raw); err != nil {
		return failure.BadRequest(fmt.Errorf("failed to decode request body: %w", err)) //nolint:wrapcheck
	}

	unknown := []string{}

	for field := range raw {
		if _, ok := allowed[field]; !ok {
			unknown = append(unknown, field)
		}
	}

	if len(unknown) > 0 {
		sort.Strings(unknown)

		return failure.BadRequestFromString(fmt.Sprintf("Invalid field(s): %s", strings.Join(unknown, ", "))) //nolint:wrapcheck
	}

	if err := json.Unmarshal(body, data); err != nil {
		return failure.BadRequest(fmt.Errorf("failed to decode request body: %w", err)) //nolint:wrapcheck
	}

	return ValidateStruct(data)
}

func ValidateStruct[T any](data *T) error {
	err := validate.Struct(data)

	if err != nil {
		msg := message(err)

		return failure.BadRequestFromString(msg) //nolint:wrapcheck
	}

	return nil
}

func ValidateVar(field any, tag string) error {
	err := validate.Var(field, tag)

	if err != nil {
		msg := message(err)

		return failure.BadRequestFromString(msg) //nolint:wrapcheck
	}

	return nil
}
