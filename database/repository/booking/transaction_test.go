package bookingRepo

import (
	"errors"
	"fmt"
	"testing"

	"staybook/services/availability"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/mongo"
)

func TestTransactionError(t *testing.T) {
	transient := []string{"TransientTransactionError"}

	tests := []struct {
		name        string
		err         error
		unavailable bool
	}{
		{
			name:        "write conflict",
			err:         mongo.CommandError{Code: writeConflictCode, Name: "WriteConflict", Labels: transient},
			unavailable: true,
		},
		{
			name:        "wrapped write conflict in write exception",
			err:         fmt.Errorf("insert booking failed: %w", mongo.WriteException{WriteErrors: []mongo.WriteError{{Code: writeConflictCode}}}),
			unavailable: true,
		},
		{
			name:        "overlap found inside transaction",
			err:         availability.ErrDatesUnavailable,
			unavailable: true,
		},
		{
			name: "primary stepdown",
			err:  mongo.CommandError{Code: 91, Name: "ShutdownInProgress", Labels: transient},
		},
		{
			name: "network error",
			err:  mongo.CommandError{Code: 0, Labels: append(transient, "NetworkError")},
		},
		{
			name: "plain failure",
			err:  errors.New("boom"),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := transactionError("L1", tt.err)
			assert.Equal(t, tt.unavailable, errors.Is(got, availability.ErrDatesUnavailable), "got %v", got)
			if !tt.unavailable {
				assert.ErrorContains(t, got, tt.err.Error())
			}
		})
	}

	assert.ErrorIs(t, transactionError("L1", availability.ErrListingNotFound), availability.ErrListingNotFound)
}
