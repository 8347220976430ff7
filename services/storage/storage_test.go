package storage

import (
	"bytes"
	"context"
	"errors"
	"io"
	"mime/multipart"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingStorage struct {
	uploads  int
	deleted  []string
	failOnNo int
}

func (r *recordingStorage) Enabled() bool { return true }

func (r *recordingStorage) Upload(_ context.Context, file io.Reader, _ ImageKind) (*Asset, error) {
	r.uploads++
	if r.failOnNo == r.uploads {
		return nil, errors.New("boom")
	}
	_, _ = io.ReadAll(file)
	id := string(rune('a' + r.uploads - 1))
	return &Asset{URL: "https://img/" + id, PublicID: id}, nil
}

func (r *recordingStorage) Delete(_ context.Context, id string) error {
	r.deleted = append(r.deleted, id)
	return nil
}

// multipartFiles builds file headers the way gin exposes them.
func multipartFiles(t *testing.T, contentTypes ...string) []*multipart.FileHeader {
	t.Helper()
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	for i, ct := range contentTypes {
		h := textproto.MIMEHeader{}
		h.Set("Content-Disposition", `form-data; name="images"; filename="f`+string(rune('0'+i))+`.jpg"`)
		h.Set("Content-Type", ct)
		part, err := w.CreatePart(h)
		require.NoError(t, err)
		_, _ = part.Write([]byte("fake image bytes"))
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest("POST", "/", body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(1<<20))
	return req.MultipartForm.File["images"]
}

func TestImageKindTransformation(t *testing.T) {
	assert.Equal(t, "c_fill,g_auto,w_2000,h_1333,q_90,f_jpg", ListingImage.Transformation())
	assert.Equal(t, "c_fill,g_auto,w_500,h_500,q_90,f_jpg", UserPhoto.Transformation())
}

func TestValidateImage(t *testing.T) {
	files := multipartFiles(t, "image/png", "application/pdf")
	assert.NoError(t, ValidateImage(files[0]))
	assert.ErrorIs(t, ValidateImage(files[1]), ErrNotAnImage)

	files[0].Size = MaxImageBytes + 1
	assert.ErrorIs(t, ValidateImage(files[0]), ErrImageTooLarge)
}

func TestUploadFiles(t *testing.T) {
	svc := &recordingStorage{}
	assets, err := UploadFiles(context.Background(), svc, multipartFiles(t, "image/jpeg", "image/png"), ListingImage)
	require.NoError(t, err)
	assert.Equal(t, []Asset{{URL: "https://img/a", PublicID: "a"}, {URL: "https://img/b", PublicID: "b"}}, assets)
}

func TestUploadFiles_RollsBackOnFailure(t *testing.T) {
	svc := &recordingStorage{failOnNo: 3}
	_, err := UploadFiles(context.Background(), svc, multipartFiles(t, "image/jpeg", "image/jpeg", "image/jpeg"), ListingImage)
	require.Error(t, err)
	assert.Equal(t, []string{"a", "b"}, svc.deleted)
}

func TestUploadFiles_RejectsBeforeUploading(t *testing.T) {
	svc := &recordingStorage{}
	_, err := UploadFiles(context.Background(), svc, multipartFiles(t, "image/jpeg", "text/plain"), ListingImage)
	assert.ErrorIs(t, err, ErrNotAnImage)
	assert.Zero(t, svc.uploads)
}

func TestDisabledStorage(t *testing.T) {
	var svc StorageService = DisabledStorageService{}
	_, err := UploadFiles(context.Background(), svc, multipartFiles(t, "image/jpeg"), UserPhoto)
	assert.ErrorIs(t, err, ErrStorageDisabled)

	assets, err := UploadFiles(context.Background(), svc, nil, UserPhoto)
	assert.NoError(t, err)
	assert.Nil(t, assets)
	assert.NoError(t, svc.Delete(context.Background(), "x"))
}
