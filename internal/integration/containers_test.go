//go:build integration

package integration

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	redis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/fairyhunter13/resume-scorer/internal/adapter/store/redisstore"
	"github.com/fairyhunter13/resume-scorer/internal/adapter/textextractor/tika"
	"github.com/fairyhunter13/resume-scorer/internal/domain"
)

func startContainer(t *testing.T, req testcontainers.ContainerRequest, port string) string {
	t.Helper()
	ctx := context.Background()
	c, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{ContainerRequest: req, Started: true})
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Terminate(ctx) })

	host, err := c.Host(ctx)
	require.NoError(t, err)
	p, err := c.MappedPort(ctx, port)
	require.NoError(t, err)
	return host + ":" + p.Port()
}

func Test_RedisStore_AtMostOnceAcrossClients(t *testing.T) {
	t.Parallel()
	addr := startContainer(t, testcontainers.ContainerRequest{
		Image:        "redis:7-alpine",
		ExposedPorts: []string{"6379/tcp"},
		WaitingFor:   wait.ForLog("Ready to accept connections").WithStartupTimeout(60 * time.Second),
	}, "6379")

	ctx := context.Background()
	writer := redisstore.New(redis.NewClient(&redis.Options{Addr: addr}), time.Minute)
	require.NoError(t, writer.Ping(ctx))
	require.NoError(t, writer.Put(ctx, domain.PendingFeedback{Token: "tok", Resume: "r", Job: "j"}))
	require.ErrorIs(t, writer.Put(ctx, domain.PendingFeedback{Token: "tok"}), domain.ErrConflict)

	// Each replica has its own client; only one may win the token.
	var wins atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			replica := redisstore.New(redis.NewClient(&redis.Options{Addr: addr}), time.Minute)
			_, err := replica.Take(ctx, "tok")
			if err == nil {
				wins.Add(1)
				return
			}
			if !errors.Is(err, domain.ErrNotFound) {
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()
	require.Equal(t, int32(1), wins.Load())
}

func Test_Tika_ExtractsText(t *testing.T) {
	t.Parallel()
	addr := startContainer(t, testcontainers.ContainerRequest{
		Image:        "apache/tika:2.9.0.0",
		ExposedPorts: []string{"9998/tcp"},
		WaitingFor:   wait.ForHTTP("/version").WithPort("9998/tcp").WithStartupTimeout(90 * time.Second),
	}, "9998")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	c := tika.New("http://" + addr)
	require.NoError(t, c.Ping(ctx))

	text, err := c.Extract(ctx, "resume.pdf", onePagePDF("Experience", "- Led a team of 5 engineers"))
	require.NoError(t, err)
	require.Contains(t, text, "Led a team of 5 engineers")

	_, err = c.Extract(ctx, "resume.txt", []byte("Experience\n- Led a team of 5 engineers\n"))
	require.ErrorIs(t, err, domain.ErrExtraction)
}

func onePagePDF(lines ...string) []byte {
	var content bytes.Buffer
	content.WriteString("BT /F1 12 Tf 72 720 Td")
	for i, l := range lines {
		if i > 0 {
			content.WriteString(" 0 -20 Td")
		}
		fmt.Fprintf(&content, " (%s) Tj", l)
	}
	content.WriteString(" ET")

	objects := []string{
		"<< /Type /Catalog /Pages 2 0 R >>",
		"<< /Type /Pages /Kids [3 0 R] /Count 1 >>",
		"<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Contents 4 0 R /Resources << /Font << /F1 5 0 R >> >> >>",
		fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", content.Len(), content.String()),
		"<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica >>",
	}
	var out bytes.Buffer
	out.WriteString("%PDF-1.4\n")
	offsets := make([]int, len(objects))
	for i, obj := range objects {
		offsets[i] = out.Len()
		fmt.Fprintf(&out, "%d 0 obj\n%s\nendobj\n", i+1, obj)
	}
	xref := out.Len()
	fmt.Fprintf(&out, "xref\n0 %d\n0000000000 65535 f \n", len(objects)+1)
	for _, off := range offsets {
		fmt.Fprintf(&out, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&out, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(objects)+1, xref)
	return out.Bytes()
}
