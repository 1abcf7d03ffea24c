package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"loadshed-console-go/pkg/model"
)

func TestFindDuplicate(t *testing.T) {
	existing := []model.Suburb{
		{ID: "1", Name: "Hillview", RegionID: "alpha"},
		{ID: "2", Name: "Northgate", RegionID: "alpha"},
	}

	t.Run("no collision passes", func(t *testing.T) {
		assert.Empty(t, FindDuplicate([]string{"Sandton", "Soweto"}, existing))
	})

	t.Run("case-insensitive collision with persisted suburb", func(t *testing.T) {
		assert.Equal(t, "hillview", FindDuplicate([]string{"hillview"}, existing))
		assert.Equal(t, "HILLVIEW", FindDuplicate([]string{"HILLVIEW"}, existing))
	})

	t.Run("collision inside the batch itself", func(t *testing.T) {
		assert.Equal(t, "sandton", FindDuplicate([]string{"Sandton", "sandton"}, existing))
	})

	t.Run("surrounding whitespace does not hide a collision", func(t *testing.T) {
		assert.Equal(t, " Northgate ", FindDuplicate([]string{" Northgate "}, existing))
	})

	t.Run("empty batch passes", func(t *testing.T) {
		assert.Empty(t, FindDuplicate(nil, existing))
	})
}
