package filevalidator

import (
	"context"
	"errors"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stubPreviewer(uri string, err error) (Previewer, *atomic.Int32) {
	var calls atomic.Int32
	return PreviewerFunc(func(ctx context.Context, c *Candidate) (string, error) {
		calls.Add(1)
		if err != nil {
			return "", err
		}
		return uri, nil
	}), &calls
}

func sized(name, mimeType string, size int64) *Candidate {
	return NewCandidate(name, size, mimeType, time.Time{}, nil)
}

func TestValidateOne_AcceptPattern(t *testing.T) {
	tests := []struct {
		name     string
		accept   string
		mimeType string
		wantOK   bool
	}{
		{name: "star accepts anything", accept: "*", mimeType: "application/x-whatever", wantOK: true},
		{name: "star accepts empty type", accept: "*", mimeType: "", wantOK: true},
		{name: "empty accept defaults to star", accept: "", mimeType: "text/plain", wantOK: true},
		{name: "wildcard accepts png", accept: "image/*", mimeType: "image/png", wantOK: true},
		{name: "wildcard accepts jpeg", accept: "image/*", mimeType: "image/jpeg", wantOK: true},
		{name: "wildcard rejects text", accept: "image/*", mimeType: "text/plain", wantOK: false},
		{name: "wildcard rejects empty type", accept: "image/*", mimeType: "", wantOK: false},
		{name: "exact type accepted", accept: "image/png", mimeType: "image/png", wantOK: true},
		{name: "substring match is permissive", accept: "image/png", mimeType: "image/png-extended", wantOK: true},
		{name: "substring mismatch", accept: "image/png", mimeType: "image/jpeg", wantOK: false},
		{name: "pattern matches anywhere", accept: "pdf", mimeType: "application/pdf", wantOK: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			v := New(Constraints{Accept: tc.accept}, nil)
			out := v.ValidateOne(context.Background(), sized("f", tc.mimeType, 10))

			require.True(t, (out.Accepted != nil) != (out.Rejected != nil), "exactly one outcome must be set")
			assert.Equal(t, tc.wantOK, out.OK())
			if !tc.wantOK {
				assert.Equal(t, ErrorTypeUnacceptedType, out.Rejected.Err.Type)
				assert.Equal(t, "f", out.Rejected.Err.Filename)
			}
		})
	}
}

func TestValidateOne_SizeBoundary(t *testing.T) {
	v := New(Constraints{Accept: "*", MaxFileSize: 1000}, nil)

	atLimit := v.ValidateOne(context.Background(), sized("a.bin", "application/octet-stream", 1000))
	assert.True(t, atLimit.OK(), "a file exactly at the limit is accepted")

	over := v.ValidateOne(context.Background(), sized("b.bin", "application/octet-stream", 1001))
	require.False(t, over.OK())
	assert.True(t, IsErrorOfType(over.Rejected.Err, ErrorTypeSize))
}

func TestValidateOne_TypeCheckedBeforeSize(t *testing.T) {
	v := New(Constraints{Accept: "image/*", MaxFileSize: 1}, nil)
	out := v.ValidateOne(context.Background(), sized("big.txt", "text/plain", 100))
	require.False(t, out.OK())
	assert.Equal(t, ErrorTypeUnacceptedType, out.Rejected.Err.Type)
}

func TestValidateOne_Preview(t *testing.T) {
	ctx := context.Background()

	t.Run("image gets preview", func(t *testing.T) {
		p, calls := stubPreviewer("data:image/png;base64,AAAA", nil)
		v := New(Constraints{Accept: "*", GeneratePreviews: true}, p)

		out := v.ValidateOne(ctx, sized("a.png", "image/png", 4))
		require.True(t, out.OK())
		assert.True(t, out.Accepted.HasPreview())
		assert.Equal(t, "data:image/png;base64,AAAA", out.Accepted.Preview)
		assert.EqualValues(t, 1, calls.Load())
	})

	t.Run("non-image never previewed", func(t *testing.T) {
		p, calls := stubPreviewer("unused", nil)
		v := New(Constraints{Accept: "*", GeneratePreviews: true}, p)

		out := v.ValidateOne(ctx, sized("a.pdf", "application/pdf", 4))
		require.True(t, out.OK())
		assert.False(t, out.Accepted.HasPreview())
		assert.EqualValues(t, 0, calls.Load())
	})

	t.Run("previews disabled", func(t *testing.T) {
		p, calls := stubPreviewer("unused", nil)
		v := New(Constraints{Accept: "*"}, p)

		out := v.ValidateOne(ctx, sized("a.png", "image/png", 4))
		require.True(t, out.OK())
		assert.Empty(t, out.Accepted.Preview)
		assert.EqualValues(t, 0, calls.Load())
	})

	t.Run("read failure voids acceptance", func(t *testing.T) {
		readErr := errors.New("disk on fire")
		p, _ := stubPreviewer("", readErr)
		v := New(Constraints{Accept: "*", GeneratePreviews: true}, p)

		out := v.ValidateOne(ctx, sized("broken.png", "image/png", 4))
		require.False(t, out.OK())
		assert.Equal(t, ErrorTypePreview, out.Rejected.Err.Type)
		assert.Equal(t, "broken.png", out.Rejected.Err.Filename)
		assert.ErrorIs(t, out.Rejected.Err, readErr)
		assert.Contains(t, out.Rejected.Err.Error(), "broken.png")
	})

	t.Run("missing previewer rejects", func(t *testing.T) {
		v := New(Constraints{Accept: "*", GeneratePreviews: true}, nil)

		out := v.ValidateOne(ctx, sized("a.png", "image/png", 4))
		require.False(t, out.OK())
		assert.ErrorIs(t, out.Rejected.Err, ErrNoPreviewer)
	})
}

func TestValidateFiles_MixedBatch(t *testing.T) {
	p, _ := stubPreviewer("data:image/png;base64,iVBO", nil)
	v := NewBuilder().
		Accept("image/*").
		MaxSize(1000).
		WithPreviews().
		Previewer(p).
		Build()

	oversized := sized("huge.png", "image/png", 5000)
	wrongType := sized("notes.txt", "text/plain", 10)
	valid := sized("ok.png", "image/png", 10)

	result := v.ValidateFiles(context.Background(), []*Candidate{oversized, wrongType, valid})

	require.Len(t, result.Accepted, 1)
	require.Len(t, result.Rejected, 2)
	assert.Same(t, valid, result.Accepted[0].Candidate)
	assert.True(t, result.Accepted[0].HasPreview())

	reasons := map[*Candidate]ValidationErrorType{}
	for _, r := range result.Rejected {
		reasons[r.Candidate] = r.Err.Type
	}
	assert.Equal(t, ErrorTypeSize, reasons[oversized])
	assert.Equal(t, ErrorTypeUnacceptedType, reasons[wrongType])
}

func TestValidateFiles_EveryCandidateClassifiedOnce(t *testing.T) {
	v := New(Constraints{Accept: "image/*", MaxFileSize: 50}, nil)

	var batch []*Candidate
	for i := 0; i < 40; i++ {
		switch i % 3 {
		case 0:
			batch = append(batch, sized("a.png", "image/png", 10))
		case 1:
			batch = append(batch, sized("b.txt", "text/plain", 10))
		default:
			batch = append(batch, sized("c.png", "image/png", 100))
		}
	}

	result := v.ValidateFiles(context.Background(), batch)
	require.Equal(t, len(batch), result.Len())

	seen := map[*Candidate]int{}
	for _, a := range result.Accepted {
		seen[a.Candidate]++
	}
	for _, r := range result.Rejected {
		seen[r.Candidate]++
	}
	for _, c := range batch {
		assert.Equal(t, 1, seen[c], "candidate must be classified exactly once")
	}
}

func TestValidateFiles_RunsConcurrently(t *testing.T) {
	const n = 5
	var wg sync.WaitGroup
	wg.Add(n)
	release := make(chan struct{})

	// Every preview blocks until all n have started, which only happens if
	// the batch runs them in parallel.
	p := PreviewerFunc(func(ctx context.Context, c *Candidate) (string, error) {
		wg.Done()
		<-release
		return "data:image/png;base64,", nil
	})
	go func() {
		wg.Wait()
		close(release)
	}()

	v := New(Constraints{Accept: "*", GeneratePreviews: true}, p)
	batch := make([]*Candidate, n)
	for i := range batch {
		batch[i] = sized("img.png", "image/png", 1)
	}

	done := make(chan *Result)
	go func() { done <- v.ValidateFiles(context.Background(), batch) }()

	select {
	case result := <-done:
		assert.Len(t, result.Accepted, n)
	case <-time.After(5 * time.Second):
		t.Fatal("batch validation did not run files concurrently")
	}
}

func TestValidateFiles_FailureDoesNotShortCircuit(t *testing.T) {
	p := PreviewerFunc(func(ctx context.Context, c *Candidate) (string, error) {
		if strings.HasPrefix(c.Name(), "bad") {
			return "", errors.New("read failed")
		}
		time.Sleep(10 * time.Millisecond)
		return "data:image/png;base64,", nil
	})
	v := New(Constraints{Accept: "*", GeneratePreviews: true, Concurrency: 2}, p)

	batch := []*Candidate{
		sized("bad1.png", "image/png", 1),
		sized("good1.png", "image/png", 1),
		sized("bad2.png", "image/png", 1),
		sized("good2.png", "image/png", 1),
	}
	result := v.ValidateFiles(context.Background(), batch)

	require.Len(t, result.Accepted, 2)
	require.Len(t, result.Rejected, 2)
	assert.Equal(t, "good1.png", result.Accepted[0].Name())
	assert.Equal(t, "good2.png", result.Accepted[1].Name())
}

func TestValidateFiles_EmptyBatch(t *testing.T) {
	result := NewDefault().ValidateFiles(context.Background(), nil)
	assert.Zero(t, result.Len())
}

func TestFluentBuilder(t *testing.T) {
	p, _ := stubPreviewer("x", nil)
	b := NewBuilder().
		Accept("application/pdf").
		MaxSize(2 * MB).
		WithPreviews().
		Concurrency(4).
		Previewer(p)

	c := b.Constraints()
	assert.Equal(t, "application/pdf", c.Accept)
	assert.Equal(t, 2*MB, c.MaxFileSize)
	assert.True(t, c.GeneratePreviews)
	assert.Equal(t, 4, c.Concurrency)

	v := b.WithoutPreviews().Build()
	assert.False(t, v.GetConstraints().GeneratePreviews)

	img := ForImages().Constraints()
	assert.Equal(t, "image/*", img.Accept)
	assert.True(t, img.GeneratePreviews)
	assert.Equal(t, 10*MB, img.MaxFileSize)
}
