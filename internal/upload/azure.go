package upload

import (
	"context"
	"fmt"

	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/blob"
)

// Azure uploads blobs to one Azure Storage container.
type Azure struct {
	client    *azblob.Client
	container string
}

// NewAzure builds the client and makes sure the container exists. A create
// failure is ignored; the container usually already exists or the principal
// lacks create rights while still being allowed to write blobs.
func NewAzure(connectionString, container string) (*Azure, error) {
	client, err := azblob.NewClientFromConnectionString(connectionString, nil)
	if err != nil {
		return nil, fmt.Errorf("azure client: %w", err)
	}
	_, _ = client.CreateContainer(context.Background(), container, nil)
	return &Azure{client: client, container: container}, nil
}

func (a *Azure) Upload(ctx context.Context, data []byte, destination, contentType string) error {
	opts := &azblob.UploadBufferOptions{}
	if contentType != "" {
		opts.HTTPHeaders = &blob.HTTPHeaders{BlobContentType: &contentType}
	}
	if _, err := a.client.UploadBuffer(ctx, a.container, destination, data, opts); err != nil {
		return fmt.Errorf("upload %s: %w", destination, err)
	}
	return nil
}
