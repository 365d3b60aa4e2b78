package dberrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/mongo"
)

func TestPostgresUniqueViolation(t *testing.T) {
	err := fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505", ConstraintName: "mentors_email_key"})

	assert.True(t, IsUniqueViolation(err))
	assert.True(t, IsDuplicateConstraintError(err, "mentors_email_key"))
	assert.False(t, IsDuplicateConstraintError(err, "students_email_key"))
	assert.True(t, IsDuplicateKey(err))

	other := &pgconn.PgError{Code: "23503"}
	assert.False(t, IsUniqueViolation(other))
}

func TestMongoDuplicateKey(t *testing.T) {
	err := mongo.WriteException{WriteErrors: []mongo.WriteError{{Code: 11000, Message: "E11000 duplicate key"}}}
	assert.True(t, IsDuplicateKey(err))
	assert.False(t, IsDuplicateKey(errors.New("boom")))
	assert.False(t, IsDuplicateKey(nil))
}
