package filemgr

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"vastra/db"
	"vastra/models"
	"vastra/utils"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
)

type EntityType string

const (
	EntityProduct EntityType = "product"
	EntityStock   EntityType = "stock"
	EntityBrand   EntityType = "brand"
)

var allowedExtensions = []string{".jpg", ".jpeg", ".png", ".webp", ".gif"}

var allowedMIMEs = []string{"image/jpeg", "image/png", "image/webp", "image/gif"}

const thumbWidth = 320

func isExtensionAllowed(ext string) bool {
	for _, a := range allowedExtensions {
		if ext == a {
			return true
		}
	}
	return false
}

func isMIMEAllowed(mimeType string) bool {
	for _, a := range allowedMIMEs {
		if mimeType == a {
			return true
		}
	}
	return false
}

// ResolvePath returns the upload directory for an entity type.
func ResolvePath(entity EntityType) string {
	return filepath.Join("static", "uploads", strings.ToLower(string(entity)))
}

// SaveImage stores one multipart image under static/uploads/<entity>/, writes
// a resized thumbnail next to it and records an Image document. The caller
// owns attaching the returned image id to its entity.
func SaveImage(ctx context.Context, file multipart.File, header *multipart.FileHeader, entity EntityType) (*models.Image, error) {
	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !isExtensionAllowed(ext) {
		return nil, fmt.Errorf("unsupported file extension %q", ext)
	}
	if mimeType := header.Header.Get("Content-Type"); !isMIMEAllowed(mimeType) {
		return nil, fmt.Errorf("unsupported content type %q", mimeType)
	}

	dir := ResolvePath(entity)
	if err := utils.EnsureDir(dir); err != nil {
		return nil, err
	}

	name := uuid.New().String() + ext
	fullPath := filepath.Join(dir, name)

	out, err := os.Create(fullPath)
	if err != nil {
		return nil, err
	}
	if _, err := io.Copy(out, file); err != nil {
		out.Close()
		os.Remove(fullPath)
		return nil, err
	}
	out.Close()

	if err := writeThumbnail(fullPath, dir, name); err != nil {
		os.Remove(fullPath)
		return nil, err
	}

	img := &models.Image{
		ImageID:   utils.GenerateID("img"),
		FileName:  name,
		URL:       "/" + filepath.ToSlash(fullPath),
		CreatedAt: time.Now(),
	}
	if _, err := db.ImageCollection.InsertOne(ctx, img); err != nil {
		os.Remove(fullPath)
		os.Remove(thumbPath(dir, name))
		return nil, err
	}
	return img, nil
}

func thumbPath(dir, name string) string {
	ext := filepath.Ext(name)
	return filepath.Join(dir, strings.TrimSuffix(name, ext)+"_thumb"+ext)
}

func writeThumbnail(srcPath, dir, name string) error {
	src, err := imaging.Open(srcPath)
	if err != nil {
		return err
	}
	thumb := imaging.Resize(src, thumbWidth, 0, imaging.Lanczos)
	return imaging.Save(thumb, thumbPath(dir, name))
}

// DeleteImage removes the Image document and both files from disk. Missing
// files are ignored; the document is authoritative.
func DeleteImage(ctx context.Context, imageID string, entity EntityType) error {
	var img models.Image
	if err := db.ImageCollection.FindOneAndDelete(ctx, bson.M{"imageid": imageID}).Decode(&img); err != nil {
		return err
	}
	dir := ResolvePath(entity)
	os.Remove(filepath.Join(dir, img.FileName))
	os.Remove(thumbPath(dir, img.FileName))
	return nil
}

// FormImage pulls the "image" field out of a multipart request.
func FormImage(r *http.Request) (multipart.File, *multipart.FileHeader, error) {
	if err := r.ParseMultipartForm(10 << 20); err != nil {
		return nil, nil, err
	}
	return r.FormFile("image")
}
