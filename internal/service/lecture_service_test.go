package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pathshala-edu/pathshala-api/internal/dto"
	"github.com/pathshala-edu/pathshala-api/internal/models"
	appErrors "github.com/pathshala-edu/pathshala-api/pkg/errors"
)

type lectureStoreStub struct {
	created   *models.Lecture
	createErr error
	items     []models.Lecture
	listErr   error
}

func (s *lectureStoreStub) Create(ctx context.Context, lecture *models.Lecture) error {
	if s.createErr != nil {
		return s.createErr
	}
	lecture.ID = "l-1"
	s.created = lecture
	return nil
}

func (s *lectureStoreStub) List(ctx context.Context, semester int) ([]models.Lecture, error) {
	return s.items, s.listErr
}

func TestLectureUploadDefaultsSemesterToOne(t *testing.T) {
	store := &lectureStoreStub{}
	disk := newStorageStub()
	svc := NewLectureService(store, disk, nil, nil, UploadConfig{PublicPrefix: "/uploads"})

	lecture, err := svc.Upload(context.Background(), dto.UploadLectureRequest{
		Title: "Intro to pointers",
	}, materialUpload("intro to pointers.mp4"), adminClaims)
	require.NoError(t, err)
	assert.Equal(t, 1, lecture.Semester)
	assert.True(t, strings.HasPrefix(lecture.VideoURL, "/uploads/lectures/"))
	for path := range disk.saved {
		assert.True(t, strings.HasPrefix(path, "lectures/"))
	}
}

func TestLectureUploadKeepsExplicitSemester(t *testing.T) {
	store := &lectureStoreStub{}
	svc := NewLectureService(store, newStorageStub(), nil, nil, UploadConfig{})

	lecture, err := svc.Upload(context.Background(), dto.UploadLectureRequest{
		Title:    "Concurrency patterns",
		Semester: 6,
	}, materialUpload("patterns.mp4"), adminClaims)
	require.NoError(t, err)
	assert.Equal(t, 6, lecture.Semester)
}

func TestLectureUploadRequiresVideo(t *testing.T) {
	svc := NewLectureService(&lectureStoreStub{}, newStorageStub(), nil, nil, UploadConfig{})

	_, err := svc.Upload(context.Background(), dto.UploadLectureRequest{
		Title: "Intro",
	}, FileUpload{}, adminClaims)
	require.Error(t, err)
	assert.Equal(t, 400, appErrors.FromError(err).Status)
}

func TestLectureUploadRequiresAdmin(t *testing.T) {
	svc := NewLectureService(&lectureStoreStub{}, newStorageStub(), nil, nil, UploadConfig{})

	_, err := svc.Upload(context.Background(), dto.UploadLectureRequest{
		Title: "Intro",
	}, materialUpload("intro.mp4"), studentClaims)
	require.Error(t, err)
	assert.Equal(t, 403, appErrors.FromError(err).Status)
}
