package picture_test

import (
	"context"
	"sort"
	"sync"

	"github.com/stretchr/testify/mock"

	"github.com/Guyuepp/picshare/domain"
)

type likeKey struct{ account, picture int64 }

type affinityKey struct{ account, tag int64 }

// fakeStore is an in-memory PictureRepository whose vote transactions roll back on error.
// Only the methods used by the toggle are implemented.
type fakeStore struct {
	domain.PictureRepository

	mu       sync.Mutex
	pictures map[int64]domain.Picture
	likes    map[likeKey]domain.Like
	affinity map[affinityKey]int
	writes   int

	// loadBarrier holds every LoadPicture until all participants have read their snapshot
	loadBarrier *sync.WaitGroup
	saveErr     error
}

func newFakeStore(pictures ...domain.Picture) *fakeStore {
	f := &fakeStore{
		pictures: make(map[int64]domain.Picture),
		likes:    make(map[likeKey]domain.Like),
		affinity: make(map[affinityKey]int),
	}
	for _, p := range pictures {
		f.pictures[p.ID] = p
	}
	return f
}

func (f *fakeStore) WithinVoteTx(ctx context.Context, fn func(tx domain.VoteTx) error) error {
	tx := &fakeTx{store: f}
	if err := fn(tx); err != nil {
		tx.rollback()
		return err
	}
	return nil
}

func (f *fakeStore) likesOf(pictureID int64) []domain.Like {
	res := make([]domain.Like, 0)
	for k, l := range f.likes {
		if k.picture == pictureID {
			res = append(res, l)
		}
	}
	sort.Slice(res, func(i, j int) bool { return res[i].AccountID < res[j].AccountID })
	return res
}

func (f *fakeStore) affinityOf(accountID int64) map[int64]int {
	f.mu.Lock()
	defer f.mu.Unlock()
	res := make(map[int64]int)
	for k, n := range f.affinity {
		if k.account == accountID {
			res[k.tag] = n
		}
	}
	return res
}

func (f *fakeStore) score(pictureID int64) int64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.pictures[pictureID].PopularityScore
}

func (f *fakeStore) likeRows(pictureID int64) []domain.Like {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.likesOf(pictureID)
}

type fakeTx struct {
	store *fakeStore
	undo  []func()
}

func (t *fakeTx) rollback() {
	t.store.mu.Lock()
	defer t.store.mu.Unlock()
	for i := len(t.undo) - 1; i >= 0; i-- {
		t.undo[i]()
	}
}

func (t *fakeTx) LoadPicture(ctx context.Context, pictureID int64) (domain.Picture, error) {
	t.store.mu.Lock()
	p, ok := t.store.pictures[pictureID]
	if ok {
		p.Likes = t.store.likesOf(pictureID)
	}
	t.store.mu.Unlock()

	if !ok {
		return domain.Picture{}, domain.ErrNotFound
	}
	if t.store.loadBarrier != nil {
		t.store.loadBarrier.Done()
		t.store.loadBarrier.Wait()
	}
	return p, nil
}

func (t *fakeTx) InsertLike(ctx context.Context, like domain.Like) (bool, error) {
	t.store.mu.Lock()
	defer t.store.mu.Unlock()
	key := likeKey{like.AccountID, like.PictureID}
	if _, ok := t.store.likes[key]; ok {
		return false, nil
	}
	t.store.likes[key] = like
	t.store.writes++
	t.undo = append(t.undo, func() { delete(t.store.likes, key) })
	return true, nil
}

func (t *fakeTx) DeleteLike(ctx context.Context, accountID, pictureID int64) (bool, error) {
	t.store.mu.Lock()
	defer t.store.mu.Unlock()
	key := likeKey{accountID, pictureID}
	old, ok := t.store.likes[key]
	if !ok {
		return false, nil
	}
	delete(t.store.likes, key)
	t.store.writes++
	t.undo = append(t.undo, func() { t.store.likes[key] = old })
	return true, nil
}

func (t *fakeTx) RecordAffinity(ctx context.Context, accountID, tagID int64) error {
	t.store.mu.Lock()
	defer t.store.mu.Unlock()
	key := affinityKey{accountID, tagID}
	if _, ok := t.store.affinity[key]; ok {
		return nil
	}
	t.store.affinity[key] = 1
	t.store.writes++
	t.undo = append(t.undo, func() { delete(t.store.affinity, key) })
	return nil
}

func (t *fakeTx) LoadLikes(ctx context.Context, pictureID int64) ([]domain.Like, error) {
	t.store.mu.Lock()
	defer t.store.mu.Unlock()
	return t.store.likesOf(pictureID), nil
}

func (t *fakeTx) SaveScore(ctx context.Context, pictureID int64, score int64) error {
	t.store.mu.Lock()
	defer t.store.mu.Unlock()
	if t.store.saveErr != nil {
		return t.store.saveErr
	}
	p := t.store.pictures[pictureID]
	old := p.PopularityScore
	p.PopularityScore = score
	t.store.pictures[pictureID] = p
	t.store.writes++
	t.undo = append(t.undo, func() {
		p := t.store.pictures[pictureID]
		p.PopularityScore = old
		t.store.pictures[pictureID] = p
	})
	return nil
}

type mockBloom struct {
	mock.Mock
}

func (m *mockBloom) Add(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockBloom) Exists(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *mockBloom) BulkAdd(ctx context.Context, ids []int64) error {
	return m.Called(ctx, ids).Error(0)
}

type mockRankWorker struct {
	mock.Mock
}

func (m *mockRankWorker) Start(ctx context.Context) {
	m.Called(ctx)
}

func (m *mockRankWorker) Send(pictureID int64, score int64) {
	m.Called(pictureID, score)
}

type mockAccountRepo struct {
	mock.Mock
}

func (m *mockAccountRepo) GetByID(ctx context.Context, id int64) (domain.Account, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.Account), args.Error(1)
}

func (m *mockAccountRepo) GetByIDs(ctx context.Context, ids []int64) ([]domain.Account, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *mockAccountRepo) GetByUsername(ctx context.Context, username string) (domain.Account, error) {
	args := m.Called(ctx, username)
	return args.Get(0).(domain.Account), args.Error(1)
}

func (m *mockAccountRepo) Insert(ctx context.Context, a *domain.Account) error {
	return m.Called(ctx, a).Error(0)
}

type mockTagRepo struct {
	mock.Mock
}

func (m *mockTagRepo) FindOrCreate(ctx context.Context, values []string) ([]domain.Tag, error) {
	args := m.Called(ctx, values)
	return args.Get(0).([]domain.Tag), args.Error(1)
}

func (m *mockTagRepo) GetByPicture(ctx context.Context, pictureID int64) ([]domain.Tag, error) {
	args := m.Called(ctx, pictureID)
	return args.Get(0).([]domain.Tag), args.Error(1)
}

func (m *mockTagRepo) RecordAffinity(ctx context.Context, accountID, tagID int64) error {
	return m.Called(ctx, accountID, tagID).Error(0)
}

func (m *mockTagRepo) GetAffinityTagIDs(ctx context.Context, accountID int64) ([]int64, error) {
	args := m.Called(ctx, accountID)
	return args.Get(0).([]int64), args.Error(1)
}

// mockPictureRepo is used by the tests that do not go through a vote transaction
type mockPictureRepo struct {
	mock.Mock
}

func (m *mockPictureRepo) Fetch(ctx context.Context, cursor string, num int64) ([]domain.Picture, error) {
	args := m.Called(ctx, cursor, num)
	return args.Get(0).([]domain.Picture), args.Error(1)
}

func (m *mockPictureRepo) GetByID(ctx context.Context, id int64) (domain.Picture, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.Picture), args.Error(1)
}

func (m *mockPictureRepo) GetByIDs(ctx context.Context, ids []int64) ([]domain.Picture, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).([]domain.Picture), args.Error(1)
}

func (m *mockPictureRepo) Store(ctx context.Context, p *domain.Picture) error {
	return m.Called(ctx, p).Error(0)
}

func (m *mockPictureRepo) ReplaceTags(ctx context.Context, pictureID int64, tags []domain.Tag) error {
	return m.Called(ctx, pictureID, tags).Error(0)
}

func (m *mockPictureRepo) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockPictureRepo) FetchLikes(ctx context.Context, pictureID int64) ([]domain.Like, error) {
	args := m.Called(ctx, pictureID)
	return args.Get(0).([]domain.Like), args.Error(1)
}

func (m *mockPictureRepo) FetchPopular(ctx context.Context, offset, limit int64) ([]domain.Picture, error) {
	args := m.Called(ctx, offset, limit)
	return args.Get(0).([]domain.Picture), args.Error(1)
}

func (m *mockPictureRepo) FetchByTags(ctx context.Context, tagIDs []int64, excludeAccountID int64, limit int64) ([]domain.Picture, error) {
	args := m.Called(ctx, tagIDs, excludeAccountID, limit)
	return args.Get(0).([]domain.Picture), args.Error(1)
}

func (m *mockPictureRepo) FetchIDs(ctx context.Context, cursor, limit int64) ([]int64, error) {
	args := m.Called(ctx, cursor, limit)
	return args.Get(0).([]int64), args.Error(1)
}

func (m *mockPictureRepo) WithinVoteTx(ctx context.Context, fn func(tx domain.VoteTx) error) error {
	return m.Called(ctx, fn).Error(0)
}
