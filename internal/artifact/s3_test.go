package artifact

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

const (
	minioUser     = "crudgen"
	minioPassword = "crudgen-secret"
)

func startMinio(t *testing.T) string {
	t.Helper()
	if testing.Short() {
		t.Skip("integration test: skipped in -short mode")
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	ctr, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "minio/minio:RELEASE.2024-01-16T16-07-38Z",
			ExposedPorts: []string{"9000/tcp"},
			Env: map[string]string{
				"MINIO_ROOT_USER":     minioUser,
				"MINIO_ROOT_PASSWORD": minioPassword,
			},
			Cmd:        []string{"server", "/data"},
			WaitingFor: wait.ForHTTP("/minio/health/live").WithPort("9000/tcp"),
		},
		Started: true,
	})
	if err != nil {
		t.Skipf("docker is not available: %v", err)
	}
	t.Cleanup(func() { _ = testcontainers.TerminateContainer(ctr) })

	endpoint, err := ctr.PortEndpoint(ctx, "9000/tcp", "")
	require.NoError(t, err)
	return endpoint
}

func TestS3Store_Save(t *testing.T) {
	endpoint := startMinio(t)

	st, err := Open(Settings{Driver: DriverS3, S3: S3Config{
		Endpoint:  endpoint,
		AccessKey: minioUser,
		SecretKey: minioPassword,
		Bucket:    "projects",
		Prefix:    "downloads",
	}})
	require.NoError(t, err)

	ctx := context.Background()
	obj, err := st.Save(ctx, "fastapi_project.zip", []byte("PK\x03\x04zip"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(obj.Key, "downloads/"))
	assert.True(t, strings.HasSuffix(obj.Key, "-fastapi_project.zip"))
	assert.Equal(t, "s3://projects/"+obj.Key, obj.Location)

	s3 := st.(*S3Store)
	rd, err := s3.client.GetObject(ctx, "projects", obj.Key, minio.GetObjectOptions{})
	require.NoError(t, err)
	defer rd.Close()
	data, err := io.ReadAll(rd)
	require.NoError(t, err)
	assert.Equal(t, "PK\x03\x04zip", string(data))
}

// fakeS3 отвечает на HEAD бакета и PUT объекта так, как это делает MinIO
func fakeS3(t *testing.T) (endpoint string, bucketChecks, puts *atomic.Int32) {
	t.Helper()
	bucketChecks, puts = &atomic.Int32{}, &atomic.Int32{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodHead && strings.Trim(r.URL.Path, "/") == "projects":
			bucketChecks.Add(1)
			w.WriteHeader(http.StatusOK)
		case r.Method == http.MethodPut && strings.HasPrefix(r.URL.Path, "/projects/"):
			_, _ = io.Copy(io.Discard, r.Body)
			puts.Add(1)
			w.Header().Set("ETag", `"d41d8cd98f00b204e9800998ecf8427e"`)
			w.WriteHeader(http.StatusOK)
		default:
			w.WriteHeader(http.StatusNotImplemented)
		}
	}))
	t.Cleanup(srv.Close)
	return strings.TrimPrefix(srv.URL, "http://"), bucketChecks, puts
}

func TestS3Store_BucketCheckRetriedAfterFailure(t *testing.T) {
	endpoint, bucketChecks, puts := fakeS3(t)
	st, err := NewS3Store(S3Config{Endpoint: endpoint, AccessKey: "k", SecretKey: "s", Bucket: "projects"})
	require.NoError(t, err)

	canceled, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = st.Save(canceled, "fastapi_project.zip", []byte("PK"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "context canceled")

	obj, err := st.Save(context.Background(), "fastapi_project.zip", []byte("PK"))
	require.NoError(t, err, "failed bucket check must not stick")
	assert.True(t, strings.HasSuffix(obj.Key, "-fastapi_project.zip"))

	_, err = st.Save(context.Background(), "fastapi_project.zip", []byte("PK"))
	require.NoError(t, err)
	assert.Equal(t, int32(1), bucketChecks.Load(), "successful check is cached")
	assert.Equal(t, int32(2), puts.Load())
}
