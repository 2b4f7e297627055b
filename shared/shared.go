package shared

import (
	"context"
	"fmt"
	"reflect"
	"strings"
	"tablebook/shared/cache"
	"tablebook/shared/constant"
	"tablebook/shared/dto"
	"tablebook/shared/timezone"

	"github.com/rs/zerolog/log"
)

// TransformFields converts the non-zero fields of a struct into a map of updated columns,
// stamping modified_at.
func TransformFields(data interface{}) map[string]any {
	val := reflect.ValueOf(data)
	typ := reflect.TypeOf(data)

	updatedFields := make(map[string]any)

	for index := range val.NumField() {
		field := val.Field(index)
		if field.IsZero() {
			continue
		}

		fieldName := typ.Field(index).Tag.Get("db")
		if fieldName == "" {
			continue
		}

		updatedFields[fieldName] = field.Interface()
	}

	updatedFields[constant.FieldModifiedAt] = timezone.Now()

	return updatedFields
}

func FilterByID(id, fieldID, table string) dto.FilterGroup {
	return dto.FilterGroup{
		Filters: []any{
			dto.Filter{
				Field:    fieldID,
				Value:    id,
				Operator: dto.FilterOperatorEq,
				Table:    table,
			},
		},
	}
}

// DigitsOnly strips everything but decimal digits from the given string.
// Mobile number search matches on digits regardless of formatting punctuation.
func DigitsOnly(value string) string {
	var builder strings.Builder

	for _, r := range value {
		if r >= '0' && r <= '9' {
			builder.WriteRune(r)
		}
	}

	return builder.String()
}

func BuildCacheKey(parts ...string) string {
	return strings.Join(parts, ":")
}

func BuildCacheKeyWithQuery(prefix string, params dto.QueryParams, filter dto.FilterGroup) string {
	where, args := filter.GetWhereClause()

	return fmt.Sprintf("%s:%s:%v:%d:%d:%s:%s", prefix, where, args, params.Page, params.Limit, params.SortBy, params.SortDir)
}

// InvalidateCaches drops every cached entry stored under the given prefix.
func InvalidateCaches(ctx context.Context, redisCache cache.RedisCache, prefix string) {
	if err := redisCache.Clear(ctx, prefix+"*"); err != nil {
		log.Error().Err(err).Str("prefix", prefix).Msg("failed to invalidate cache")
	}
}
