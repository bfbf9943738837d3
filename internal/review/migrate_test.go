package review

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/at-ishikawa/recurrence/internal/annotation"
	"github.com/at-ishikawa/recurrence/internal/document"
)

func TestPlanAndApplyMigrations(t *testing.T) {
	store := newMemoryStore(map[string]string{
		"a.md": "dog/hound/cur:犬 %%sr - \u0c11\ueba9%%\ncat:猫 %%sr2025-01-054%%\nbird:鳥",
		"b.md": "fish:魚 %%sr \u0c11\ueba9%%",
	})
	codec := newTestCodec(t, annotation.EncodingTagged)
	cards, err := NewLoader(store, codec).Load([]string{"a.md", "b.md"})
	require.NoError(t, err)

	migrations, err := PlanMigrations(cards, codec)
	require.NoError(t, err)
	require.Len(t, migrations, 2)
	assert.Equal(t, "dog/hound/cur:犬 %%sr12025-01-033%%", migrations[0].NewLine)
	assert.Equal(t, "fish:魚 %%sr2025-01-033%%", migrations[1].NewLine)

	// b.md changed after it was read
	store.files["b.md"] = "fish:さかな"

	applied, err := ApplyMigrations(store, migrations)
	assert.Equal(t, 1, applied)
	assert.ErrorIs(t, err, document.ErrLineNotFound)
	assert.Equal(t, "dog/hound/cur:犬 %%sr12025-01-033%%\ncat:猫 %%sr2025-01-054%%\nbird:鳥", store.files["a.md"])
	assert.Equal(t, "fish:さかな", store.files["b.md"])
}

func TestPlanMigrations_RequiresTagged(t *testing.T) {
	_, err := PlanMigrations(nil, newTestCodec(t, annotation.EncodingCompact))
	assert.Error(t, err)
}
