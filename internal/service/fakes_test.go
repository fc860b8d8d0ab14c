package service

import (
	"context"
	"errors"
	"io"

	"github.com/meetscribe/summarizer/internal/model"
)

type fakeTranscriber struct {
	started  []*model.TranscriptionJob
	startErr error

	job      *model.TranscriptionJob
	getErr   error
	getCalls int
}

func (f *fakeTranscriber) StartJob(ctx context.Context, job *model.TranscriptionJob) error {
	if f.startErr != nil {
		return f.startErr
	}
	f.started = append(f.started, job)
	return nil
}

func (f *fakeTranscriber) GetJob(ctx context.Context, jobName string) (*model.TranscriptionJob, error) {
	f.getCalls++
	if f.getErr != nil {
		return nil, f.getErr
	}
	if f.job == nil {
		return nil, errors.New("no such job: " + jobName)
	}
	return f.job, nil
}

type fakeStore struct {
	objects map[string][]byte
	uploads []string

	uploadErr   error
	downloadErr error
	existsErr   error
}

func newFakeStore() *fakeStore {
	return &fakeStore{objects: map[string][]byte{}}
}

func (f *fakeStore) Upload(ctx context.Context, key string, body io.Reader, contentType string) error {
	if f.uploadErr != nil {
		return f.uploadErr
	}
	data, err := io.ReadAll(body)
	if err != nil {
		return err
	}
	f.objects[key] = data
	f.uploads = append(f.uploads, key)
	return nil
}

func (f *fakeStore) Download(ctx context.Context, key string) ([]byte, error) {
	if f.downloadErr != nil {
		return nil, f.downloadErr
	}
	data, ok := f.objects[key]
	if !ok {
		return nil, errors.New("no such key: " + key)
	}
	return data, nil
}

func (f *fakeStore) Exists(ctx context.Context, key string) (bool, error) {
	if f.existsErr != nil {
		return false, f.existsErr
	}
	_, ok := f.objects[key]
	return ok, nil
}

func (f *fakeStore) URI(key string) string {
	return "s3://test-bucket/" + key
}

type fakeGenerator struct {
	response string
	err      error

	systems []string
	prompts []string
}

func (f *fakeGenerator) Generate(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	f.systems = append(f.systems, systemPrompt)
	f.prompts = append(f.prompts, userPrompt)
	if f.err != nil {
		return "", f.err
	}
	return f.response, nil
}
