package content

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ashoke-maity/Minor-project-TIU-sub001/internal/model"
	"github.com/ashoke-maity/Minor-project-TIU-sub001/internal/store/sqlite"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	name := strings.NewReplacer("/", "_").Replace(t.Name())
	st, err := sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", name))
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	return NewService(st)
}

func TestParseKind(t *testing.T) {
	k, err := ParseKind("Jobs")
	require.NoError(t, err)
	assert.Equal(t, KindJobs, k)

	_, err = ParseKind("posts")
	assert.ErrorIs(t, err, ErrUnknownKind)
}

func TestCreateRequiresTitle(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	tests := []struct {
		name string
		item any
		want error
	}{
		{"announcement", &model.Announcement{Title: " "}, ErrMissingTitle},
		{"event", &model.Event{}, ErrMissingTitle},
		{"job without title", &model.Job{Company: "Acme"}, ErrMissingTitle},
		{"job without company", &model.Job{Title: "SRE"}, ErrMissingCompany},
		{"story", &model.Story{Body: "once"}, ErrMissingTitle},
		{"unknown", &model.Post{}, ErrUnknownKind},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(ctx, 1, tt.item)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestContentLifecycle(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	for _, kind := range []Kind{KindAnnouncements, KindEvents, KindJobs, KindStories} {
		t.Run(string(kind), func(t *testing.T) {
			item, err := NewItem(kind)
			require.NoError(t, err)
			switch v := item.(type) {
			case *model.Announcement:
				v.Title = "Reunion"
			case *model.Event:
				v.Name = "Homecoming"
			case *model.Job:
				v.Title, v.Company = "Engineer", "Acme"
			case *model.Story:
				v.Title = "From campus to orbit"
			}

			created, err := svc.Create(ctx, 7, item)
			require.NoError(t, err)

			id := itemID(t, created)
			got, err := svc.Get(ctx, kind, id)
			require.NoError(t, err)
			assert.Equal(t, id, itemID(t, got))

			list, err := svc.List(ctx, kind, 0)
			require.NoError(t, err)
			assert.NotNil(t, list)

			require.NoError(t, svc.Delete(ctx, kind, id))
			_, err = svc.Get(ctx, kind, id)
			assert.ErrorIs(t, err, ErrNotFound)
			assert.ErrorIs(t, svc.Delete(ctx, kind, id), ErrNotFound)
		})
	}
}

func itemID(t *testing.T, item any) int64 {
	t.Helper()
	switch v := item.(type) {
	case model.Announcement:
		return v.ID
	case model.Event:
		return v.ID
	case model.Job:
		return v.ID
	case model.Story:
		return v.ID
	}
	t.Fatalf("unexpected item %T", item)
	return 0
}
