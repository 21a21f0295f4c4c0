package domain_test

import (
	"testing"
	"time"

	"github.com/corefin/gl_ledger_app/internal/core/domain"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDraftEntry() domain.JournalEntry {
	return domain.JournalEntry{
		EntryID:     uuid.NewString(),
		CompanyID:   uuid.NewString(),
		DocumentNo:  "JE-000001",
		EntryType:   domain.Standard,
		Status:      domain.Draft,
		PostingDate: time.Now(),
		Description: "office rent",
	}
}

func newLine(amount string, direction domain.Direction) domain.JournalLine {
	return domain.JournalLine{
		LineID:    uuid.NewString(),
		AccountID: uuid.NewString(),
		Amount:    decimal.RequireFromString(amount),
		Direction: direction,
	}
}

func TestAppendLine(t *testing.T) {
	t.Run("accepts positive amounts", func(t *testing.T) {
		entry := newDraftEntry()
		require.NoError(t, entry.AppendLine(newLine("100.00", domain.Debit)))
		require.NoError(t, entry.AppendLine(newLine("100.00", domain.Credit)))
		assert.Len(t, entry.Lines, 2)
	})

	t.Run("rejects zero and negative amounts", func(t *testing.T) {
		entry := newDraftEntry()
		err := entry.AppendLine(newLine("0", domain.Debit))
		assert.ErrorIs(t, err, domain.ErrInvalidAmount)

		err = entry.AppendLine(newLine("-5.00", domain.Credit))
		assert.ErrorIs(t, err, domain.ErrInvalidAmount)
		assert.Empty(t, entry.Lines)
	})

	t.Run("rejects lines on a posted entry", func(t *testing.T) {
		entry := newDraftEntry()
		entry.Status = domain.Posted

		err := entry.AppendLine(newLine("100.00", domain.Debit))
		var stateErr *domain.InvalidStateTransitionError
		assert.ErrorAs(t, err, &stateErr)
	})
}

func TestBalance(t *testing.T) {
	entry := newDraftEntry()
	require.NoError(t, entry.AppendLine(newLine("100.00", domain.Debit)))
	require.NoError(t, entry.AppendLine(newLine("80.00", domain.Credit)))

	assert.True(t, entry.Balance().Equal(decimal.RequireFromString("20.00")))
	assert.False(t, entry.IsBalanced())
}

func TestPost(t *testing.T) {
	t.Run("posts a balanced draft", func(t *testing.T) {
		entry := newDraftEntry()
		require.NoError(t, entry.AppendLine(newLine("100.00", domain.Debit)))
		require.NoError(t, entry.AppendLine(newLine("100.00", domain.Credit)))

		require.NoError(t, entry.Post())
		assert.Equal(t, domain.Posted, entry.Status)
	})

	t.Run("tolerates rounding residue within a cent", func(t *testing.T) {
		entry := newDraftEntry()
		require.NoError(t, entry.AppendLine(newLine("100.00", domain.Debit)))
		require.NoError(t, entry.AppendLine(newLine("99.99", domain.Credit)))

		require.NoError(t, entry.Post())
		assert.Equal(t, domain.Posted, entry.Status)
	})

	t.Run("rejects an unbalanced entry with the delta", func(t *testing.T) {
		entry := newDraftEntry()
		require.NoError(t, entry.AppendLine(newLine("100.00", domain.Debit)))
		require.NoError(t, entry.AppendLine(newLine("99.98", domain.Credit)))

		err := entry.Post()
		var unbalanced *domain.UnbalancedEntryError
		require.ErrorAs(t, err, &unbalanced)
		assert.True(t, unbalanced.Delta.Equal(decimal.RequireFromString("0.02")))
		assert.Equal(t, domain.Draft, entry.Status)
	})

	t.Run("rejects fewer than two lines", func(t *testing.T) {
		entry := newDraftEntry()
		require.NoError(t, entry.AppendLine(newLine("100.00", domain.Debit)))

		assert.ErrorIs(t, entry.Post(), domain.ErrEntryMinLines)
	})

	t.Run("rejects posting a posted entry", func(t *testing.T) {
		entry := newDraftEntry()
		require.NoError(t, entry.AppendLine(newLine("100.00", domain.Debit)))
		require.NoError(t, entry.AppendLine(newLine("100.00", domain.Credit)))
		require.NoError(t, entry.Post())

		err := entry.Post()
		var stateErr *domain.InvalidStateTransitionError
		require.ErrorAs(t, err, &stateErr)
		assert.Equal(t, domain.Posted, stateErr.From)
	})
}

func TestCancel(t *testing.T) {
	t.Run("cancels a draft", func(t *testing.T) {
		entry := newDraftEntry()
		require.NoError(t, entry.Cancel())
		assert.Equal(t, domain.Cancelled, entry.Status)
	})

	t.Run("cancels a posted entry", func(t *testing.T) {
		entry := newDraftEntry()
		entry.Status = domain.Posted
		require.NoError(t, entry.Cancel())
		assert.Equal(t, domain.Cancelled, entry.Status)
	})

	t.Run("rejects cancelling twice", func(t *testing.T) {
		entry := newDraftEntry()
		require.NoError(t, entry.Cancel())

		err := entry.Cancel()
		var stateErr *domain.InvalidStateTransitionError
		assert.ErrorAs(t, err, &stateErr)
	})
}

func TestDirectionOpposite(t *testing.T) {
	assert.Equal(t, domain.Credit, domain.Debit.Opposite())
	assert.Equal(t, domain.Debit, domain.Credit.Opposite())
}

func TestLineSignedAmount(t *testing.T) {
	debit := newLine("25.50", domain.Debit)
	credit := newLine("25.50", domain.Credit)

	assert.True(t, debit.SignedAmount().Equal(decimal.RequireFromString("25.50")))
	assert.True(t, credit.SignedAmount().Equal(decimal.RequireFromString("-25.50")))
}

func TestLineIsOpen(t *testing.T) {
	line := newLine("10.00", domain.Debit)
	assert.True(t, line.IsOpen())

	clearingID := uuid.NewString()
	line.ClearingID = &clearingID
	assert.False(t, line.IsOpen())
}

func TestParseDirection(t *testing.T) {
	d, err := domain.ParseDirection(" debit ")
	require.NoError(t, err)
	assert.Equal(t, domain.Debit, d)

	_, err = domain.ParseDirection("sideways")
	assert.Error(t, err)
}

func TestParseEntryStatus(t *testing.T) {
	s, err := domain.ParseEntryStatus("posted")
	require.NoError(t, err)
	assert.Equal(t, domain.Posted, s)

	_, err = domain.ParseEntryStatus("")
	assert.Error(t, err)
}
