package kernel_test

import (
	"testing"

	"deliveryhub/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const knownUUID = "3f2c8d6a-9b1e-4f07-8c5d-2a6e4b9d1c30"

func TestNewUUID(t *testing.T) {
	t.Run("should create a valid UUID", func(t *testing.T) {
		id := kernel.NewUUID()

		assert.NoError(t, id.Validate())
		assert.NotEqual(t, "00000000-0000-0000-0000-000000000000", id.String())
	})

	t.Run("should create unique UUIDs", func(t *testing.T) {
		first := kernel.NewUUID()
		second := kernel.NewUUID()

		assert.NotEqual(t, first.String(), second.String())
		assert.False(t, first.IsEqual(second))
	})
}

func TestUUIDFromString(t *testing.T) {
	t.Run("should accept every canonical encoding", func(t *testing.T) {
		encodings := []string{
			knownUUID,
			"{3f2c8d6a-9b1e-4f07-8c5d-2a6e4b9d1c30}",
			"urn:uuid:3f2c8d6a-9b1e-4f07-8c5d-2a6e4b9d1c30",
			"3f2c8d6a9b1e4f078c5d2a6e4b9d1c30",
		}

		for _, encoding := range encodings {
			id, err := kernel.UUIDFromString(encoding)

			require.NoError(t, err, "encoding: %s", encoding)
			assert.Equal(t, knownUUID, id.String())
			assert.NoError(t, id.Validate())
		}
	})

	t.Run("should reject malformed identifiers", func(t *testing.T) {
		malformed := []string{
			"",
			"order-42",
			"3f2c8d6a-9b1e-4f07-8c5d",
			knownUUID + "-extra",
			"zz2c8d6a-9b1e-4f07-8c5d-2a6e4b9d1c30",
		}

		for _, input := range malformed {
			_, err := kernel.UUIDFromString(input)

			require.Error(t, err, "input: %s", input)
			assert.Contains(t, err.Error(), "invalid UUID format")
		}
	})
}

func TestUUIDFromBytes(t *testing.T) {
	t.Run("should create UUID from 16 raw bytes", func(t *testing.T) {
		raw, err := uuid.Parse(knownUUID)
		require.NoError(t, err)

		id, err := kernel.UUIDFromBytes(raw[:])

		require.NoError(t, err)
		assert.Equal(t, knownUUID, id.String())
	})

	t.Run("should reject a truncated byte slice", func(t *testing.T) {
		_, err := kernel.UUIDFromBytes([]byte{0x3f, 0x2c, 0x8d})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid UUID format")
	})

	t.Run("should reject the nil UUID", func(t *testing.T) {
		_, err := kernel.UUIDFromBytes(make([]byte, 16))

		assert.Equal(t, kernel.ErrUUIDIsNotConstructed, err)
	})
}

func TestUUID_String(t *testing.T) {
	t.Run("should render the canonical hyphenated form", func(t *testing.T) {
		id := kernel.NewUUID()

		assert.Regexp(t, `^[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}$`, id.String())
	})

	t.Run("should render stably for a parsed UUID", func(t *testing.T) {
		id, err := kernel.UUIDFromString(knownUUID)
		require.NoError(t, err)

		assert.Equal(t, knownUUID, id.String())
	})
}

func TestUUID_Bytes(t *testing.T) {
	t.Run("should expose the underlying uuid.UUID", func(t *testing.T) {
		id := kernel.NewUUID()
		raw := id.Bytes()

		assert.IsType(t, uuid.UUID{}, raw)
		assert.Equal(t, id.String(), raw.String())
	})

	t.Run("mutating the returned value leaves the UUID untouched", func(t *testing.T) {
		id := kernel.NewUUID()
		before := id.String()

		raw := id.Bytes()
		for i := range raw {
			raw[i] = 0xFF
		}

		assert.Equal(t, before, id.String())
		assert.NoError(t, id.Validate())
	})
}

func TestUUID_IsEqual(t *testing.T) {
	t.Run("should match two parses of the same identifier", func(t *testing.T) {
		first, err := kernel.UUIDFromString(knownUUID)
		require.NoError(t, err)
		second, err := kernel.UUIDFromString(knownUUID)
		require.NoError(t, err)

		assert.True(t, first.IsEqual(second))
		assert.True(t, second.IsEqual(first))
	})

	t.Run("should not match distinct identifiers", func(t *testing.T) {
		assert.False(t, kernel.NewUUID().IsEqual(kernel.NewUUID()))
	})

	t.Run("zero values compare equal to each other only", func(t *testing.T) {
		var first kernel.UUID
		var second kernel.UUID

		assert.True(t, first.IsEqual(second))
		assert.False(t, first.IsEqual(kernel.NewUUID()))
	})
}

func TestUUID_Validate(t *testing.T) {
	t.Run("should accept a generated UUID", func(t *testing.T) {
		assert.NoError(t, kernel.NewUUID().Validate())
	})

	t.Run("should reject the zero value", func(t *testing.T) {
		var id kernel.UUID

		assert.Equal(t, kernel.ErrUUIDIsNotConstructed, id.Validate())
	})

	t.Run("should reject the parsed nil UUID", func(t *testing.T) {
		id, err := kernel.UUIDFromString("00000000-0000-0000-0000-000000000000")
		require.NoError(t, err)

		assert.Equal(t, kernel.ErrUUIDIsNotConstructed, id.Validate())
	})
}

// Aggregates embed kernel.UUID directly, so an uninitialized identifier
// field must be caught by Validate rather than silently persisted.
func TestUUID_UsageInStruct(t *testing.T) {
	type deliveryRecord struct {
		ID kernel.UUID
	}

	t.Run("should validate an assigned field", func(t *testing.T) {
		record := deliveryRecord{ID: kernel.NewUUID()}

		assert.NoError(t, record.ID.Validate())
	})

	t.Run("should flag an uninitialized field", func(t *testing.T) {
		var record deliveryRecord

		assert.Error(t, record.ID.Validate())
	})
}
