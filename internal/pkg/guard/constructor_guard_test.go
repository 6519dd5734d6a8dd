package guard_test

import (
	"errors"
	"sync"
	"testing"

	"fooddelivery/internal/pkg/guard"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errPositionIsNotConstructed = errors.New("position must be created via newPosition")

// position mimics a value object guarded the way domain types and commands are.
type position struct {
	latitude  float64
	longitude float64

	guard guard.ConstructorGuard
}

func newPosition(latitude, longitude float64) (position, error) {
	var problems []error
	if latitude < -90 || latitude > 90 {
		problems = append(problems, errors.New("latitude out of range"))
	}
	if longitude < -180 || longitude > 180 {
		problems = append(problems, errors.New("longitude out of range"))
	}
	if err := errors.Join(problems...); err != nil {
		return position{}, err
	}

	return position{latitude: latitude, longitude: longitude, guard: guard.NewConstructorGuard()}, nil
}

func (p position) Validate() error {
	return p.guard.Validate(errPositionIsNotConstructed)
}

func TestConstructorGuard_Validate(t *testing.T) {
	t.Run("constructed guard passes", func(t *testing.T) {
		assert.NoError(t, guard.NewConstructorGuard().Validate(errPositionIsNotConstructed))
	})

	t.Run("zero value returns the given error", func(t *testing.T) {
		var g guard.ConstructorGuard
		assert.ErrorIs(t, g.Validate(errPositionIsNotConstructed), errPositionIsNotConstructed)
	})

	t.Run("zero value with nil error returns the default", func(t *testing.T) {
		var g guard.ConstructorGuard
		err := g.Validate(nil)

		assert.ErrorIs(t, err, guard.ErrDefaultConstructorGuard)
		assert.Contains(t, err.Error(), "constructor")
	})

	t.Run("constructed guard ignores nil error", func(t *testing.T) {
		assert.NoError(t, guard.NewConstructorGuard().Validate(nil))
	})
}

func TestConstructorGuard_GuardedValueObject(t *testing.T) {
	t.Run("built through constructor", func(t *testing.T) {
		p, err := newPosition(52.52, 13.405)
		require.NoError(t, err)
		assert.NoError(t, p.Validate())
	})

	t.Run("zero value is rejected", func(t *testing.T) {
		assert.ErrorIs(t, position{}.Validate(), errPositionIsNotConstructed)
	})

	t.Run("struct literal is rejected", func(t *testing.T) {
		p := position{latitude: 1, longitude: 2}
		assert.ErrorIs(t, p.Validate(), errPositionIsNotConstructed)
	})

	t.Run("constructor reports every violation", func(t *testing.T) {
		p, err := newPosition(91, 181)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "latitude")
		assert.Contains(t, err.Error(), "longitude")
		assert.Error(t, p.Validate())
	})

	t.Run("copies keep the flag", func(t *testing.T) {
		p, err := newPosition(0, 0)
		require.NoError(t, err)

		copied := p
		assert.NoError(t, copied.Validate())
	})
}

func TestConstructorGuard_ConcurrentValidate(t *testing.T) {
	g := guard.NewConstructorGuard()

	var wg sync.WaitGroup
	results := make(chan error, 50)
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results <- g.Validate(errPositionIsNotConstructed)
		}()
	}
	wg.Wait()
	close(results)

	for err := range results {
		assert.NoError(t, err)
	}
}
