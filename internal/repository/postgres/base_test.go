package postgres

import (
	"errors"
	"fmt"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

func TestIsUniqueViolation(t *testing.T) {
	uniqueErr := &pq.Error{
		Code:       "23505",
		Constraint: "consultations_doctor_id_scheduled_at_key",
	}

	assert.True(t, isUniqueViolation(uniqueErr, ""))
	assert.True(t, isUniqueViolation(uniqueErr, "consultations_doctor_id_scheduled_at_key"))
	assert.False(t, isUniqueViolation(uniqueErr, "users_username_key"))

	wrapped := fmt.Errorf("insert failed: %w", uniqueErr)
	assert.True(t, isUniqueViolation(wrapped, "consultations_doctor_id_scheduled_at_key"))
}

func TestIsUniqueViolationOtherErrors(t *testing.T) {
	assert.False(t, isUniqueViolation(errors.New("connection refused"), ""))
	assert.False(t, isUniqueViolation(&pq.Error{Code: "23503"}, ""))
	assert.False(t, isUniqueViolation(nil, ""))
}
