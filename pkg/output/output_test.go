package output

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"io"
	"path/filepath"
	"testing"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/request"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
)

func testImage(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 100, A: 255})
		}
	}
	return img
}

func TestEncodePNG_RoundTripsPixels(t *testing.T) {
	img := testImage(8, 5)
	data, err := EncodePNG(img)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	decoded, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("Failed to decode: %v", err)
	}
	if decoded.Bounds() != img.Bounds() {
		t.Fatalf("Expected bounds %v, got %v", img.Bounds(), decoded.Bounds())
	}
	r, g, b, a := decoded.At(3, 4).RGBA()
	if r>>8 != 3 || g>>8 != 4 || b>>8 != 100 || a>>8 != 255 {
		t.Errorf("Unexpected pixel (%d,%d,%d,%d)", r>>8, g>>8, b>>8, a>>8)
	}
}

func TestSavePNG_CreatesDirectories(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "render.png")
	if err := SavePNG(path, testImage(4, 4)); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
}

func TestThumbnail(t *testing.T) {
	tests := []struct {
		name           string
		width, height  int
		maxWidth       uint
		expectedWidth  int
		expectedHeight int
	}{
		{"Downscales keeping aspect", 400, 200, 100, 100, 50},
		{"Small image unchanged", 50, 20, 100, 50, 20},
		{"Zero disables", 400, 200, 0, 400, 200},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			thumb := Thumbnail(testImage(tt.width, tt.height), tt.maxWidth)
			if thumb.Bounds().Dx() != tt.expectedWidth || thumb.Bounds().Dy() != tt.expectedHeight {
				t.Errorf("Expected %dx%d, got %v", tt.expectedWidth, tt.expectedHeight, thumb.Bounds())
			}
		})
	}
}

// mockS3 records uploads; embedding the interface satisfies the rest of s3iface.S3API
type mockS3 struct {
	s3iface.S3API
	inputs []*s3.PutObjectInput
	bodies [][]byte
	err    error
}

func (m *mockS3) PutObjectWithContext(ctx aws.Context, input *s3.PutObjectInput, opts ...request.Option) (*s3.PutObjectOutput, error) {
	if m.err != nil {
		return nil, m.err
	}
	body, _ := io.ReadAll(input.Body)
	m.inputs = append(m.inputs, input)
	m.bodies = append(m.bodies, body)
	return &s3.PutObjectOutput{}, nil
}

func TestS3Publisher_Publish(t *testing.T) {
	client := &mockS3{}
	publisher := NewS3PublisherWithClient(client, "bucket", "renders")

	key, err := publisher.Publish(context.Background(), "default/render.png", []byte("png-bytes"))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if key != "renders/default/render.png" {
		t.Errorf("Unexpected key %q", key)
	}
	if len(client.inputs) != 1 {
		t.Fatalf("Expected one upload, got %d", len(client.inputs))
	}

	input := client.inputs[0]
	if aws.StringValue(input.Bucket) != "bucket" || aws.StringValue(input.ContentType) != "image/png" {
		t.Errorf("Unexpected upload input %v", input)
	}
	if aws.Int64Value(input.ContentLength) != 9 || string(client.bodies[0]) != "png-bytes" {
		t.Errorf("Unexpected body %q", client.bodies[0])
	}
}

func TestS3Publisher_PublishError(t *testing.T) {
	uploadErr := errors.New("access denied")
	publisher := NewS3PublisherWithClient(&mockS3{err: uploadErr}, "bucket", "")

	if _, err := publisher.Publish(context.Background(), "x.png", nil); !errors.Is(err, uploadErr) {
		t.Errorf("Expected wrapped upload error, got %v", err)
	}
}
