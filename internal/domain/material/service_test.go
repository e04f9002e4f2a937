package material

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"offerstock/internal/core/apperror"
	"offerstock/internal/core/id"
	"offerstock/internal/domain/quantity"
)

type fakeRepo struct {
	items  map[string]*ArticleQuantity
	lookup []string
}

func (f *fakeRepo) FindQuantityByArticle(_ context.Context, article string) (*ArticleQuantity, error) {
	f.lookup = append(f.lookup, article)
	return f.items[article], nil
}

func TestNormalizeArticle(t *testing.T) {
	tests := []struct {
		raw     string
		want    string
		wantErr bool
	}{
		{raw: "TA01-16-205-55-94V", want: "TA01-16-205-55-94V"},
		{raw: "  ta01-16-205-55-94v ", want: "TA01-16-205-55-94V"},
		{raw: "X1", want: "X1"},
		{raw: "", wantErr: true},
		{raw: "   ", wantErr: true},
		{raw: "TA01--16", wantErr: true},
		{raw: "-TA01", wantErr: true},
		{raw: "TA01 16", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := NormalizeArticle(tt.raw)
			if tt.wantErr {
				assert.True(t, apperror.IsValidation(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestService_FindByArticle(t *testing.T) {
	var stock quantity.Record
	stock.SetQuantity(12)
	stock.SetReserve(4)

	repo := &fakeRepo{items: map[string]*ArticleQuantity{
		"TA01-16-205-55-94V": {MaterialID: id.New(), SKUID: id.New(), Article: "TA01-16-205-55-94V", Stock: &stock},
	}}
	svc := NewService(repo)

	got, err := svc.FindByArticle(context.Background(), "ta01-16-205-55-94v")
	require.NoError(t, err)
	assert.Equal(t, 12, got.Stock.Quantity())
	assert.Equal(t, 4, got.Stock.Reserve())
	assert.Equal(t, []string{"TA01-16-205-55-94V"}, repo.lookup)
}

func TestService_FindByArticle_NotFound(t *testing.T) {
	svc := NewService(&fakeRepo{})

	_, err := svc.FindByArticle(context.Background(), "NOPE-1")
	assert.True(t, apperror.IsNotFound(err))
}

func TestService_FindByArticle_InvalidSkipsLookup(t *testing.T) {
	repo := &fakeRepo{}
	svc := NewService(repo)

	_, err := svc.FindByArticle(context.Background(), " ")
	assert.True(t, apperror.IsValidation(err))
	assert.Empty(t, repo.lookup)
}
