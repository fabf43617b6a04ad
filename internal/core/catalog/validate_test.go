package catalog

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Lorenacollante/sprintfinal-nodo-cine-backend/internal/core/domain"
)

func fixedNow() time.Time { return time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC) }

func fieldsOf(t *testing.T, err error) map[string]string {
	t.Helper()
	var de *domain.Error
	require.True(t, errors.As(err, &de), "expected *domain.Error, got %v", err)
	require.Equal(t, domain.KindValidation, de.Kind)
	return de.Fields
}

func TestValidateCreate_Valid(t *testing.T) {
	v := NewValidator(fixedNow)
	d := Normalize(decode(t, `{"title":"Up","year":2009,"genres":["Animation"],"ageRating":"PG","rating":8.3}`))
	assert.NoError(t, v.ValidateCreate(d))
}

func TestValidateCreate_ReportsEveryField(t *testing.T) {
	v := NewValidator(fixedNow)
	d := Normalize(decode(t, `{"year":1500,"ageRating":"XX","rating":11,"posterUrl":"ftp://x"}`))

	fields := fieldsOf(t, v.ValidateCreate(d))
	assert.Contains(t, fields, "title")
	assert.Contains(t, fields, "year")
	assert.Contains(t, fields, "genres")
	assert.Contains(t, fields, "ageRating")
	assert.Contains(t, fields, "rating")
	assert.Contains(t, fields, "posterUrl")
}

func TestValidateCreate_FutureYear(t *testing.T) {
	v := NewValidator(fixedNow)
	d := Normalize(decode(t, `{"title":"Later","year":2030,"genres":["Drama"]}`))

	fields := fieldsOf(t, v.ValidateCreate(d))
	assert.Equal(t, "year cannot be later than 2024", fields["year"])
}

func TestValidateCreate_LowerYearBound(t *testing.T) {
	v := NewValidator(fixedNow)
	d := Normalize(decode(t, `{"title":"Roundhay","year":1888,"genres":["Short"]}`))
	assert.NoError(t, v.ValidateCreate(d))
}

func TestValidateUpdate_OnlySuppliedFields(t *testing.T) {
	v := NewValidator(fixedNow)

	assert.NoError(t, v.ValidateUpdate(Normalize(decode(t, `{"rating":9}`))))

	fields := fieldsOf(t, v.ValidateUpdate(Normalize(decode(t, `{"ageRating":"XX"}`))))
	assert.Equal(t, map[string]string{"ageRating": "ageRating must be one of: G, PG, PG-13, R, NC-17"}, fields)
}

func TestValidateUpdate_EmptyTitleRejected(t *testing.T) {
	v := NewValidator(fixedNow)
	fields := fieldsOf(t, v.ValidateUpdate(Normalize(decode(t, `{"title":"   "}`))))
	assert.Equal(t, "title is required", fields["title"])
}
