package listings

import (
	"context"
	"errors"
	"testing"

	"github.com/angelmondragon/storefront/pkg/enums"
	pkgerrors "github.com/angelmondragon/storefront/pkg/errors"
	"github.com/angelmondragon/storefront/pkg/logger"
	"github.com/angelmondragon/storefront/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingSource struct{}

func (failingSource) Listings(context.Context) ([]Listing, error) {
	return nil, errors.New("connection refused")
}

func newTestService(t *testing.T, source Source) Service {
	t.Helper()
	svc, err := NewService(source, NewEngine(6), metrics.NewStorefrontMetrics(prometheus.NewRegistry()), logger.Nop())
	require.NoError(t, err)
	return svc
}

func TestNewServiceValidatesDependencies(t *testing.T) {
	_, err := NewService(nil, NewEngine(6), nil, nil)
	assert.Error(t, err)

	src, err := NewStaticSource(ReferenceCatalog())
	require.NoError(t, err)
	_, err = NewService(src, nil, nil, nil)
	assert.Error(t, err)
}

func TestServiceBrowse(t *testing.T) {
	src, err := NewStaticSource(ReferenceCatalog())
	require.NoError(t, err)
	svc := newTestService(t, src)
	ctx := context.Background()

	criteria := DefaultCriteria()
	criteria.SearchTerm = "pizza"
	got, outcome, err := svc.Browse(ctx, nil, criteria)
	require.NoError(t, err)
	assert.Equal(t, PageOutcomeOK, outcome)
	assert.Equal(t, []string{"1", "9"}, ids(got.Items))

	browser := svc.NewBrowser()
	_, _, err = svc.Browse(ctx, browser, DefaultCriteria().WithPage(2))
	require.NoError(t, err)
	got, outcome, err = svc.Browse(ctx, browser, DefaultCriteria().WithPage(99))
	require.NoError(t, err)
	assert.Equal(t, PageOutcomeOutOfRange, outcome)
	assert.Equal(t, 2, got.CurrentPage)
}

func TestServiceBrowseErrors(t *testing.T) {
	svc := newTestService(t, failingSource{})

	_, _, err := svc.Browse(context.Background(), nil, DefaultCriteria())
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeDependency))

	invalid := DefaultCriteria()
	invalid.SortKey = enums.SortKey("nope")
	_, _, err = svc.Browse(context.Background(), nil, invalid)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))
}

func TestServiceCuisinesReturnsCopy(t *testing.T) {
	src, err := NewStaticSource(ReferenceCatalog())
	require.NoError(t, err)
	svc := newTestService(t, src)

	cuisines := svc.Cuisines()
	require.Equal(t, AllCuisines, cuisines)
	cuisines[0] = "mutated"
	assert.Equal(t, "Pizza", AllCuisines[0])
}
