package upload

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// StorageClient abstracts the media host so tests can swap in a stub.
type StorageClient interface {
	UploadFile(objectName string, fileData io.Reader, resourceType string) (url string, publicID string, err error)
}

type CloudinaryClient struct {
	Folder string
	Ctx    context.Context
	Client *cloudinary.Cloudinary
}

func NewCloudinaryClient(folder string) (*CloudinaryClient, error) {
	ctx := context.Background()
	client, err := cloudinary.NewFromURL(os.Getenv("CLOUDINARY_URL"))
	if err != nil {
		return nil, fmt.Errorf("failed to create cloudinary client: %v", err)
	}
	return &CloudinaryClient{
		Folder: folder,
		Ctx:    ctx,
		Client: client,
	}, nil
}

func (c *CloudinaryClient) UploadFile(objectName string, fileData io.Reader, resourceType string) (string, string, error) {
	resp, err := c.Client.Upload.Upload(c.Ctx, fileData, uploader.UploadParams{
		PublicID:     objectName,
		Folder:       c.Folder,
		ResourceType: resourceType,
	})
	if err != nil {
		return "", "", fmt.Errorf("failed to upload object: %v", err)
	}
	if resp.Error.Message != "" {
		return "", "", fmt.Errorf("failed to upload object: %s", resp.Error.Message)
	}
	return resp.SecureURL, resp.PublicID, nil
}
