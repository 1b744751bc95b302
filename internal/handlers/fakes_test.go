package handlers_test

import (
	"context"
	"io"
	"sort"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/screamhq/screams-backend/internal/models"
	"github.com/screamhq/screams-backend/internal/repositories"
)

// In-memory fakes standing in for the Mongo repositories. They reproduce the
// store-level behaviors the handlers rely on: duplicate-key rejection on
// users and likes, conditional counter updates, and not-found sentinels.

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[string]*models.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*models.User{}}
}

func (r *fakeUserRepo) CreateUser(_ context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[user.Handle]; ok {
		return repositories.ErrHandleTaken
	}
	for _, u := range r.users {
		if u.Email == user.Email {
			return repositories.ErrEmailTaken
		}
	}
	user.CreatedAt = time.Now()
	copied := *user
	r.users[user.Handle] = &copied
	return nil
}

func (r *fakeUserRepo) GetUserByHandle(_ context.Context, handle string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[handle]
	if !ok {
		return nil, repositories.ErrUserNotFound
	}
	copied := *user
	return &copied, nil
}

func (r *fakeUserRepo) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, repositories.ErrUserNotFound
}

func (r *fakeUserRepo) GetUserByUserID(_ context.Context, userID string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.UserID == userID {
			copied := *u
			return &copied, nil
		}
	}
	return nil, repositories.ErrUserNotFound
}

func (r *fakeUserRepo) UpdateDetails(_ context.Context, handle string, details bson.M) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[handle]
	if !ok {
		return repositories.ErrUserNotFound
	}
	if bio, ok := details["bio"].(string); ok {
		user.Bio = bio
	}
	if website, ok := details["website"].(string); ok {
		user.Website = website
	}
	if location, ok := details["location"].(string); ok {
		user.Location = location
	}
	return nil
}

func (r *fakeUserRepo) UpdateImageURL(_ context.Context, handle, imageURL string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[handle]
	if !ok {
		return repositories.ErrUserNotFound
	}
	user.ImageURL = imageURL
	return nil
}

type fakeScreamRepo struct {
	mu        sync.Mutex
	screams   map[string]*models.Scream
	cascaded  []string
	createSeq int
}

func newFakeScreamRepo() *fakeScreamRepo {
	return &fakeScreamRepo{screams: map[string]*models.Scream{}}
}

func (r *fakeScreamRepo) CreateScream(_ context.Context, scream *models.Scream) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	scream.ID = primitive.NewObjectID()
	r.createSeq++
	scream.CreatedAt = time.Now().Add(time.Duration(r.createSeq) * time.Millisecond)
	scream.LikeCount = 0
	scream.CommentCount = 0
	copied := *scream
	r.screams[scream.ID.Hex()] = &copied
	return nil
}

func (r *fakeScreamRepo) GetScreamByID(_ context.Context, id string) (*models.Scream, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	scream, ok := r.screams[id]
	if !ok {
		return nil, repositories.ErrScreamNotFound
	}
	copied := *scream
	return &copied, nil
}

func (r *fakeScreamRepo) GetAllScreams(_ context.Context) ([]models.Scream, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	screams := []models.Scream{}
	for _, s := range r.screams {
		screams = append(screams, *s)
	}
	sort.Slice(screams, func(i, j int) bool {
		return screams[i].CreatedAt.After(screams[j].CreatedAt)
	})
	return screams, nil
}

func (r *fakeScreamRepo) GetScreamsByUserHandle(_ context.Context, handle string) ([]models.Scream, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	screams := []models.Scream{}
	for _, s := range r.screams {
		if s.UserHandle == handle {
			screams = append(screams, *s)
		}
	}
	sort.Slice(screams, func(i, j int) bool {
		return screams[i].CreatedAt.After(screams[j].CreatedAt)
	})
	return screams, nil
}

func (r *fakeScreamRepo) DeleteScream(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.screams[id]; !ok {
		return repositories.ErrScreamNotFound
	}
	delete(r.screams, id)
	return nil
}

func (r *fakeScreamRepo) IncrementLikeCount(_ context.Context, id string) error {
	return r.inc(id, 1, 0)
}

func (r *fakeScreamRepo) DecrementLikeCount(_ context.Context, id string) error {
	return r.inc(id, -1, 0)
}

func (r *fakeScreamRepo) IncrementCommentCount(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	scream, ok := r.screams[id]
	if !ok {
		return repositories.ErrScreamNotFound
	}
	scream.CommentCount++
	return nil
}

func (r *fakeScreamRepo) inc(id string, likeDelta, commentDelta int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if scream, ok := r.screams[id]; ok {
		scream.LikeCount += likeDelta
		scream.CommentCount += commentDelta
	}
	return nil
}

func (r *fakeScreamRepo) UpdateUserImage(_ context.Context, handle, imageURL string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range r.screams {
		if s.UserHandle == handle {
			s.UserImage = imageURL
		}
	}
	return nil
}

func (r *fakeScreamRepo) DeleteDependents(_ context.Context, screamID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cascaded = append(r.cascaded, screamID)
	return nil
}

type fakeCommentRepo struct {
	mu       sync.Mutex
	comments []models.Comment
}

func newFakeCommentRepo() *fakeCommentRepo {
	return &fakeCommentRepo{}
}

func (r *fakeCommentRepo) CreateComment(_ context.Context, comment *models.Comment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	comment.ID = primitive.NewObjectID()
	comment.CreatedAt = time.Now()
	r.comments = append(r.comments, *comment)
	return nil
}

func (r *fakeCommentRepo) GetCommentsByScreamID(_ context.Context, screamID string) ([]models.Comment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	comments := []models.Comment{}
	for _, c := range r.comments {
		if c.ScreamID == screamID {
			comments = append(comments, c)
		}
	}
	return comments, nil
}

type fakeLikeRepo struct {
	mu    sync.Mutex
	likes map[string]models.Like // keyed by userHandle+"/"+screamId
}

func newFakeLikeRepo() *fakeLikeRepo {
	return &fakeLikeRepo{likes: map[string]models.Like{}}
}

func (r *fakeLikeRepo) CreateLike(_ context.Context, like *models.Like) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := like.UserHandle + "/" + like.ScreamID
	if _, ok := r.likes[key]; ok {
		return repositories.ErrAlreadyLiked
	}
	like.ID = primitive.NewObjectID()
	r.likes[key] = *like
	return nil
}

func (r *fakeLikeRepo) DeleteLike(_ context.Context, userHandle, screamID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := userHandle + "/" + screamID
	if _, ok := r.likes[key]; !ok {
		return repositories.ErrNotLiked
	}
	delete(r.likes, key)
	return nil
}

func (r *fakeLikeRepo) GetLikesByUserHandle(_ context.Context, handle string) ([]models.Like, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	likes := []models.Like{}
	for _, l := range r.likes {
		if l.UserHandle == handle {
			likes = append(likes, l)
		}
	}
	return likes, nil
}

type fakeNotificationRepo struct {
	mu            sync.Mutex
	notifications map[string]*models.Notification
}

func newFakeNotificationRepo() *fakeNotificationRepo {
	return &fakeNotificationRepo{notifications: map[string]*models.Notification{}}
}

func (r *fakeNotificationRepo) UpsertNotification(_ context.Context, n *models.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *n
	r.notifications[n.ID] = &copied
	return nil
}

func (r *fakeNotificationRepo) DeleteNotificationByID(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.notifications, id)
	return nil
}

func (r *fakeNotificationRepo) GetNotificationsByRecipient(_ context.Context, recipient string, limit int64) ([]models.Notification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	notifications := []models.Notification{}
	for _, n := range r.notifications {
		if n.Recipient == recipient && int64(len(notifications)) < limit {
			notifications = append(notifications, *n)
		}
	}
	return notifications, nil
}

func (r *fakeNotificationRepo) MarkNotificationsRead(_ context.Context, ids []string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, id := range ids {
		if n, ok := r.notifications[id]; ok {
			n.Read = true
		}
	}
	return nil
}

type fakeUploader struct {
	uploaded []string
}

func (u *fakeUploader) Upload(_ context.Context, objectName, _ string, r io.Reader) (string, error) {
	io.Copy(io.Discard, r)
	u.uploaded = append(u.uploaded, objectName)
	return "https://cdn.example.com/" + objectName, nil
}
