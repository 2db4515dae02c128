package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ayush-assistant/herbcatalog/internal/catalog"
	"github.com/ayush-assistant/herbcatalog/internal/domain"
	"github.com/ayush-assistant/herbcatalog/internal/repo"
	"github.com/ayush-assistant/herbcatalog/internal/service"
)

// mockFeed is a hand-written test double for repo.ChangeFeed.
type mockFeed struct {
	listen func(ctx context.Context, onChange func(op string)) error
}

func (m *mockFeed) Listen(ctx context.Context, onChange func(op string)) error {
	return m.listen(ctx, onChange)
}

var _ repo.ChangeFeed = (*mockFeed)(nil)

func catalogHerbs() []domain.Herb {
	return []domain.Herb{
		{Name: "Ashwagandha", Category: "Adaptogen", Benefits: []string{"Stress relief"}, Dosage: "1 capsule"},
		{Name: "Tulsi", Category: "Immunity", Benefits: []string{"Respiratory support"}, Dosage: "2 leaves"},
		{Name: "Brahmi", Category: "Nootropic", Benefits: []string{"Memory"}, Dosage: "300 mg"},
		{Name: "Giloy", Category: "Immunity", Benefits: []string{"Fever"}, Dosage: "1 tsp"},
	}
}

func listRepo(herbs []domain.Herb) *mockHerbRepo {
	return &mockHerbRepo{
		list: func(_ context.Context) ([]domain.Herb, error) { return herbs, nil },
	}
}

func TestCatalogService_BeforeRefresh(t *testing.T) {
	svc := service.NewCatalogService(listRepo(catalogHerbs()), discardLogger())

	res := svc.Search(catalog.Query{}, domain.NewPaginationParams(nil, nil))

	assert.False(t, svc.Loaded())
	assert.False(t, res.Loaded)
	assert.NotNil(t, res.Herbs)
	assert.Empty(t, res.Herbs)
	assert.Equal(t, "Showing 0 of 0 herbs", res.Summary.Text)
	assert.Empty(t, svc.Categories())
}

func TestCatalogService_Refresh_Search(t *testing.T) {
	svc := service.NewCatalogService(listRepo(catalogHerbs()), discardLogger())
	require.NoError(t, svc.Refresh(context.Background()))

	res := svc.Search(catalog.Query{Category: "Immunity"}, domain.NewPaginationParams(nil, nil))

	assert.True(t, res.Loaded)
	assert.Equal(t, 2, res.Matched)
	require.Len(t, res.Herbs, 2)
	assert.Equal(t, "Tulsi", res.Herbs[0].Name)
	assert.Equal(t, "Giloy", res.Herbs[1].Name)
	assert.Equal(t, "Showing 2 of 4 herbs", res.Summary.Text)
	assert.Equal(t, []string{"Adaptogen", "Immunity", "Nootropic"}, svc.Categories())
}

func TestCatalogService_Search_Pages(t *testing.T) {
	svc := service.NewCatalogService(listRepo(catalogHerbs()), discardLogger())
	require.NoError(t, svc.Refresh(context.Background()))

	page, limit := 2, 3
	res := svc.Search(catalog.Query{}, domain.NewPaginationParams(&page, &limit))

	assert.Equal(t, 4, res.Matched)
	require.Len(t, res.Herbs, 1)
	assert.Equal(t, "Giloy", res.Herbs[0].Name)
	assert.Equal(t, "Showing 4 of 4 herbs", res.Summary.Text)
}

func TestCatalogService_Search_NoMatch(t *testing.T) {
	svc := service.NewCatalogService(listRepo(catalogHerbs()), discardLogger())
	require.NoError(t, svc.Refresh(context.Background()))

	res := svc.Search(catalog.Query{Text: "xyz"}, domain.NewPaginationParams(nil, nil))

	assert.Empty(t, res.Herbs)
	assert.True(t, res.Summary.Empty)
	assert.Equal(t, "Showing 0 of 4 herbs", res.Summary.Text)
}

func TestCatalogService_Refresh_ErrorKeepsIndex(t *testing.T) {
	fail := false
	svc := service.NewCatalogService(&mockHerbRepo{
		list: func(_ context.Context) ([]domain.Herb, error) {
			if fail {
				return nil, errors.New("db down")
			}
			return catalogHerbs(), nil
		},
	}, discardLogger())
	require.NoError(t, svc.Refresh(context.Background()))

	fail = true
	err := svc.Refresh(context.Background())

	require.Error(t, err)
	assert.Equal(t, 4, svc.Snapshot().Len())
}

func TestCatalogService_Watch(t *testing.T) {
	herbs := catalogHerbs()[:1]
	refreshed := make(chan struct{})

	svc := service.NewCatalogService(&mockHerbRepo{
		list: func(_ context.Context) ([]domain.Herb, error) { return herbs, nil },
	}, discardLogger())

	feed := &mockFeed{
		listen: func(ctx context.Context, onChange func(op string)) error {
			herbs = catalogHerbs()
			onChange("INSERT")
			close(refreshed)
			<-ctx.Done()
			return nil
		},
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- svc.Watch(ctx, feed) }()

	select {
	case <-refreshed:
	case <-time.After(5 * time.Second):
		t.Fatal("feed never delivered a change")
	}
	assert.True(t, svc.Loaded())
	assert.Equal(t, 4, svc.Snapshot().Len())

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Watch did not return after cancel")
	}
}
