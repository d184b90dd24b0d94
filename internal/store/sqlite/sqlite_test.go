package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ashoke-maity/Minor-project-TIU-sub001/internal/model"
	"github.com/ashoke-maity/Minor-project-TIU-sub001/internal/store"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	st, err := Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", name))
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	return st
}

func createUser(t *testing.T, st *Store, email string) model.Account {
	t.Helper()
	a := model.Account{
		Role:         model.RoleUser,
		Email:        email,
		FirstName:    "Test",
		LastName:     "User",
		PasswordHash: "hash",
		CreatedAt:    time.Now(),
	}
	_, err := st.CreateAccount(context.Background(), &a)
	require.NoError(t, err)
	return a
}

func createPost(t *testing.T, st *Store, owner model.Account, postType model.PostType) model.Post {
	t.Helper()
	p := model.Post{
		OwnerID:   owner.ID,
		OwnerName: owner.FullName(),
		Content:   "hello",
		Type:      postType,
		CreatedAt: time.Now(),
	}
	_, err := st.CreatePost(context.Background(), &p)
	require.NoError(t, err)
	return p
}

func TestSchemaVersion(t *testing.T) {
	st := openTestStore(t)
	v, err := st.SchemaVersion(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1), v)
}

func TestToggleLikeRoundTrip(t *testing.T) {
	ctx := context.Background()
	st := openTestStore(t)
	owner := createUser(t, st, "owner@example.com")
	viewer := createUser(t, st, "viewer@example.com")
	post := createPost(t, st, owner, model.PostRegular)

	res, err := st.ToggleLike(ctx, post.ID, viewer.ID, time.Now())
	require.NoError(t, err)
	assert.True(t, res.Active)
	assert.Equal(t, 1, res.Count)

	res, err = st.ToggleLike(ctx, post.ID, viewer.ID, time.Now())
	require.NoError(t, err)
	assert.False(t, res.Active)
	assert.Equal(t, 0, res.Count)

	_, err = st.ToggleLike(ctx, 9999, viewer.ID, time.Now())
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestToggleLikeConcurrentDistinctAccounts(t *testing.T) {
	ctx := context.Background()
	st := openTestStore(t)
	owner := createUser(t, st, "owner@example.com")
	post := createPost(t, st, owner, model.PostRegular)

	var likers []model.Account
	for i := 0; i < 8; i++ {
		likers = append(likers, createUser(t, st, fmt.Sprintf("liker%d@example.com", i)))
	}

	var wg sync.WaitGroup
	for _, a := range likers {
		wg.Add(1)
		go func(id int64) {
			defer wg.Done()
			_, err := st.ToggleLike(ctx, post.ID, id, time.Now())
			assert.NoError(t, err)
		}(a.ID)
	}
	wg.Wait()

	got, err := st.GetPost(ctx, post.ID, owner.ID)
	require.NoError(t, err)
	assert.Equal(t, len(likers), got.LikeCount)
}

func TestToggleLikeConcurrentSameAccount(t *testing.T) {
	ctx := context.Background()
	st := openTestStore(t)
	owner := createUser(t, st, "owner@example.com")
	viewer := createUser(t, st, "viewer@example.com")

	for _, n := range []int{8, 9} {
		t.Run(fmt.Sprintf("%d toggles", n), func(t *testing.T) {
			post := createPost(t, st, owner, model.PostRegular)

			var (
				wg     sync.WaitGroup
				mu     sync.Mutex
				active int
			)
			for i := 0; i < n; i++ {
				wg.Add(1)
				go func() {
					defer wg.Done()
					res, err := st.ToggleLike(ctx, post.ID, viewer.ID, time.Now())
					if !assert.NoError(t, err) {
						return
					}
					assert.LessOrEqual(t, res.Count, 1)
					if res.Active {
						mu.Lock()
						active++
						mu.Unlock()
					}
				}()
			}
			wg.Wait()

			// Toggles serialize, so they alternate on, off, on...
			assert.Equal(t, (n+1)/2, active)
			got, err := st.GetPost(ctx, post.ID, viewer.ID)
			require.NoError(t, err)
			assert.Equal(t, n%2, got.LikeCount)
			assert.Equal(t, n%2 == 1, got.IsLiked)
		})
	}
}

func TestWithTxRollsBackOnPanic(t *testing.T) {
	ctx := context.Background()
	st := openTestStore(t)
	owner := createUser(t, st, "owner@example.com")
	post := createPost(t, st, owner, model.PostRegular)

	assert.PanicsWithValue(t, "boom", func() {
		_ = st.withTx(ctx, func(tx *sql.Tx) error {
			_, err := tx.ExecContext(ctx, `INSERT INTO post_likes (post_id, account_id, created_at) VALUES (?, ?, ?)`, post.ID, owner.ID, time.Now().Unix())
			require.NoError(t, err)
			panic("boom")
		})
	})

	// The connection must be usable again and the insert gone.
	res, err := st.ToggleLike(ctx, post.ID, owner.ID, time.Now())
	require.NoError(t, err)
	assert.True(t, res.Active)
	assert.Equal(t, 1, res.Count)
}

func TestWithTxRollsBackOnError(t *testing.T) {
	ctx := context.Background()
	st := openTestStore(t)
	owner := createUser(t, st, "owner@example.com")
	post := createPost(t, st, owner, model.PostRegular)

	errStop := errors.New("stop")
	err := st.withTx(ctx, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, `INSERT INTO post_saves (post_id, account_id, created_at) VALUES (?, ?, ?)`, post.ID, owner.ID, time.Now().Unix())
		require.NoError(t, err)
		return errStop
	})
	assert.ErrorIs(t, err, errStop)

	got, err := st.GetPost(ctx, post.ID, owner.ID)
	require.NoError(t, err)
	assert.False(t, got.IsSaved)
}

func TestListPostsViewerFlagsAndFilters(t *testing.T) {
	ctx := context.Background()
	st := openTestStore(t)
	alice := createUser(t, st, "alice@example.com")
	bob := createUser(t, st, "bob@example.com")

	alicePost := createPost(t, st, alice, model.PostRegular)
	bobJob := createPost(t, st, bob, model.PostJob)

	_, err := st.ToggleLike(ctx, bobJob.ID, alice.ID, time.Now())
	require.NoError(t, err)
	_, err = st.ToggleSave(ctx, bobJob.ID, alice.ID, time.Now())
	require.NoError(t, err)

	all, err := st.ListPosts(ctx, store.PostListOpts{ViewerID: alice.ID, Filter: store.FeedAll, Limit: 10})
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, bobJob.ID, all[0].ID, "newest first")
	assert.True(t, all[0].IsLiked)
	assert.True(t, all[0].IsSaved)

	// Liked for alice, not for bob.
	asBob, err := st.ListPosts(ctx, store.PostListOpts{ViewerID: bob.ID, Filter: store.FeedAll, Limit: 10})
	require.NoError(t, err)
	assert.False(t, asBob[0].IsLiked)
	assert.Equal(t, 1, asBob[0].LikeCount)

	others, err := st.ListPosts(ctx, store.PostListOpts{ViewerID: alice.ID, Filter: store.FeedExcludingOwn, Limit: 10})
	require.NoError(t, err)
	require.Len(t, others, 1)
	assert.Equal(t, bobJob.ID, others[0].ID)

	own, err := st.ListPosts(ctx, store.PostListOpts{ViewerID: alice.ID, Filter: store.FeedOwnOnly, Limit: 10})
	require.NoError(t, err)
	require.Len(t, own, 1)
	assert.Equal(t, alicePost.ID, own[0].ID)

	saved, err := st.ListPosts(ctx, store.PostListOpts{ViewerID: alice.ID, Filter: store.FeedSaved, Limit: 10})
	require.NoError(t, err)
	require.Len(t, saved, 1)

	jobs, err := st.ListPosts(ctx, store.PostListOpts{ViewerID: bob.ID, Filter: store.FeedByType, Type: model.PostJob, Limit: 10})
	require.NoError(t, err)
	require.Len(t, jobs, 1)
	assert.Equal(t, model.PostJob, jobs[0].Type)

	page, err := st.ListPosts(ctx, store.PostListOpts{ViewerID: alice.ID, Filter: store.FeedAll, Limit: 10, Cursor: bobJob.ID})
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, alicePost.ID, page[0].ID)
}

func TestPostDetailsPersistOnlyForMatchingType(t *testing.T) {
	ctx := context.Background()
	st := openTestStore(t)
	owner := createUser(t, st, "owner@example.com")

	p := model.Post{
		OwnerID:    owner.ID,
		OwnerName:  owner.FullName(),
		Content:    "we are hiring",
		Type:       model.PostJob,
		JobDetails: &model.JobDetails{Title: "Engineer", Company: "Acme"},
		CreatedAt:  time.Now(),
	}
	_, err := st.CreatePost(ctx, &p)
	require.NoError(t, err)

	got, err := st.GetPost(ctx, p.ID, owner.ID)
	require.NoError(t, err)
	require.NotNil(t, got.JobDetails)
	assert.Equal(t, "Acme", got.JobDetails.Company)
	assert.Nil(t, got.EventDetails)

	regular := model.Post{
		OwnerID:      owner.ID,
		OwnerName:    owner.FullName(),
		Content:      "just text",
		Type:         model.PostRegular,
		EventDetails: &model.EventDetails{Name: "ignored"},
		CreatedAt:    time.Now(),
	}
	_, err = st.CreatePost(ctx, &regular)
	require.NoError(t, err)
	got, err = st.GetPost(ctx, regular.ID, owner.ID)
	require.NoError(t, err)
	assert.Nil(t, got.EventDetails)
}

func TestCommentsAttachedInOrder(t *testing.T) {
	ctx := context.Background()
	st := openTestStore(t)
	owner := createUser(t, st, "owner@example.com")
	post := createPost(t, st, owner, model.PostRegular)

	for _, text := range []string{"first", "second"} {
		c := model.Comment{PostID: post.ID, AuthorID: owner.ID, AuthorName: owner.FullName(), Text: text, CreatedAt: time.Now()}
		_, err := st.CreateComment(ctx, &c)
		require.NoError(t, err)
	}

	posts, err := st.ListPosts(ctx, store.PostListOpts{ViewerID: owner.ID, Filter: store.FeedAll, Limit: 10})
	require.NoError(t, err)
	require.Len(t, posts, 1)
	require.Len(t, posts[0].Comments, 2)
	assert.Equal(t, "first", posts[0].Comments[0].Text)
	assert.Equal(t, 2, posts[0].CommentCount)

	require.NoError(t, st.DeleteComment(ctx, post.ID, posts[0].Comments[0].ID))
	assert.ErrorIs(t, st.DeleteComment(ctx, post.ID, posts[0].Comments[0].ID), store.ErrNotFound)
}

func TestNotificationsScopedToRecipient(t *testing.T) {
	ctx := context.Background()
	st := openTestStore(t)
	alice := createUser(t, st, "alice@example.com")
	bob := createUser(t, st, "bob@example.com")
	post := createPost(t, st, alice, model.PostRegular)

	n := model.Notification{RecipientID: alice.ID, SenderID: bob.ID, SenderName: bob.FullName(), Kind: model.NotifyLike, PostID: post.ID, Message: "liked", CreatedAt: time.Now()}
	_, err := st.CreateNotification(ctx, &n)
	require.NoError(t, err)

	assert.ErrorIs(t, st.MarkNotificationRead(ctx, n.ID, bob.ID), store.ErrNotFound)
	require.NoError(t, st.MarkNotificationRead(ctx, n.ID, alice.ID))

	list, err := st.ListNotifications(ctx, alice.ID, 10)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.True(t, list[0].Read)

	// Deleting the post removes its notifications.
	require.NoError(t, st.DeletePost(ctx, post.ID))
	list, err = st.ListNotifications(ctx, alice.ID, 10)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestContentLifecycle(t *testing.T) {
	ctx := context.Background()
	st := openTestStore(t)

	date := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	e := model.Event{AuthorID: 1, Name: "Reunion", Date: &date, Location: "Campus", CreatedAt: time.Now()}
	_, err := st.CreateEvent(ctx, &e)
	require.NoError(t, err)

	got, err := st.GetEvent(ctx, e.ID)
	require.NoError(t, err)
	require.NotNil(t, got.Date)
	assert.True(t, got.Date.Equal(date))

	j := model.Job{AuthorID: 1, Title: "Dev", Company: "Acme", CreatedAt: time.Now()}
	_, err = st.CreateJob(ctx, &j)
	require.NoError(t, err)
	a := model.Announcement{AuthorID: 1, Title: "Welcome", Body: "hi", CreatedAt: time.Now()}
	_, err = st.CreateAnnouncement(ctx, &a)
	require.NoError(t, err)
	s := model.Story{AuthorID: 1, Title: "From campus to CTO", CreatedAt: time.Now()}
	_, err = st.CreateStory(ctx, &s)
	require.NoError(t, err)

	stats, err := st.GetSiteStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats.Events)
	assert.Equal(t, int64(1), stats.Jobs)
	assert.Equal(t, int64(1), stats.Announcements)
	assert.Equal(t, int64(1), stats.Stories)

	require.NoError(t, st.DeleteEvent(ctx, e.ID))
	_, err = st.GetEvent(ctx, e.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)
}
