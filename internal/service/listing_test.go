package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inmobot-ai/realty-platform/internal/model"
	"github.com/inmobot-ai/realty-platform/internal/store"
	"github.com/inmobot-ai/realty-platform/pkg/logger"
)

type fakeListingStore struct {
	store.Store

	properties []model.Property
	insertErr  error
	deleted    [][2]int64
}

func (f *fakeListingStore) InsertProperty(ctx context.Context, p *model.Property) (int64, error) {
	if f.insertErr != nil {
		return 0, f.insertErr
	}
	f.properties = append(f.properties, *p)
	return int64(len(f.properties)), nil
}

func (f *fakeListingStore) ListProperties(ctx context.Context, agentID int64) ([]model.Property, error) {
	return f.properties, nil
}

func (f *fakeListingStore) DeleteProperty(ctx context.Context, agentID, propertyID int64) error {
	f.deleted = append(f.deleted, [2]int64{agentID, propertyID})
	return nil
}

func TestExtractRejectsNonPDF(t *testing.T) {
	svc := NewListingService(&fakeListingStore{}, &fakeLLM{}, "gpt-4o-mini", logger.NewNop())

	_, _, err := svc.Extract(context.Background(), []byte("this is not a pdf"))
	assert.Error(t, err)
}

func TestSaveStripsNulBytes(t *testing.T) {
	st := &fakeListingStore{}
	svc := NewListingService(st, &fakeLLM{}, "gpt-4o-mini", logger.NewNop())

	prop, err := svc.Save(context.Background(), 3, &model.SaveListingRequest{
		Title:     "Casa Moderna",
		Price:     "$2,500,000",
		Location:  "Zona Norte",
		Summary:   "Amplia y luminosa",
		SheetText: "texto\x00con\x00nulos",
	})
	require.NoError(t, err)

	assert.Equal(t, int64(1), prop.ID)
	assert.Equal(t, int64(3), prop.AgentID)
	assert.Equal(t, "textoconnulos", prop.SheetText)
	require.Len(t, st.properties, 1)
	assert.Equal(t, "Casa Moderna", st.properties[0].Title)
}

func TestSavePropagatesStoreError(t *testing.T) {
	st := &fakeListingStore{insertErr: errors.New("db down")}
	svc := NewListingService(st, &fakeLLM{}, "gpt-4o-mini", logger.NewNop())

	_, err := svc.Save(context.Background(), 3, &model.SaveListingRequest{Title: "Casa"})
	assert.Error(t, err)
}

func TestDeleteScopesToAgent(t *testing.T) {
	st := &fakeListingStore{}
	svc := NewListingService(st, &fakeLLM{}, "gpt-4o-mini", logger.NewNop())

	require.NoError(t, svc.Delete(context.Background(), 3, 9))
	require.Len(t, st.deleted, 1)
	assert.Equal(t, [2]int64{3, 9}, st.deleted[0])
}
