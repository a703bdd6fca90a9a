package jobsrv_test

import (
	"context"
	"testing"

	"github.com/Abraxas-365/hrms/pkg/errx"
	"github.com/Abraxas-365/hrms/pkg/ptrx"
	"github.com/Abraxas-365/hrms/pkg/recruitment/application"
	"github.com/Abraxas-365/hrms/pkg/recruitment/job"
	"github.com/Abraxas-365/hrms/pkg/recruitment/job/jobsrv"
	"github.com/Abraxas-365/hrms/pkg/storage/memstore"
)

func TestCreateJob(t *testing.T) {
	tests := []struct {
		name    string
		req     job.CreateJobRequest
		wantErr bool
	}{
		{name: "valid", req: job.CreateJobRequest{Title: "Backend Engineer", SalaryMin: 100, SalaryMax: 200, Currency: "usd"}},
		{name: "open salary range", req: job.CreateJobRequest{Title: "Designer", SalaryMin: 50}},
		{name: "missing title", req: job.CreateJobRequest{Title: "  "}, wantErr: true},
		{name: "inverted salary", req: job.CreateJobRequest{Title: "QA", SalaryMin: 300, SalaryMax: 200}, wantErr: true},
		{name: "negative salary", req: job.CreateJobRequest{Title: "QA", SalaryMin: -1}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := memstore.New()
			svc := jobsrv.NewJobService(store.Jobs(), store.Applications())

			j, err := svc.CreateJob(context.Background(), tt.req)
			if tt.wantErr {
				if !errx.IsCode(err, job.CodeInvalidJob) {
					t.Errorf("got %v, want invalid job", err)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if !j.IsOpen() {
				t.Errorf("new job status = %s, want open", j.Status)
			}
		})
	}
}

func TestUpdateAndList(t *testing.T) {
	store := memstore.New()
	svc := jobsrv.NewJobService(store.Jobs(), store.Applications())
	ctx := context.Background()

	a, _ := svc.CreateJob(ctx, job.CreateJobRequest{Title: "A"})
	_, _ = svc.CreateJob(ctx, job.CreateJobRequest{Title: "B"})

	if _, err := svc.UpdateJob(ctx, a.ID, job.UpdateJobRequest{Status: ptrx.String("closed")}); err != nil {
		t.Fatal(err)
	}
	_, err := svc.UpdateJob(ctx, a.ID, job.UpdateJobRequest{Status: ptrx.String("archived")})
	if err == nil {
		t.Error("unknown status should be rejected")
	}

	open, _ := svc.ListJobs(ctx, "open")
	closed, _ := svc.ListJobs(ctx, "closed")
	all, _ := svc.ListJobs(ctx, "")
	if len(open) != 1 || len(closed) != 1 || len(all) != 2 {
		t.Errorf("open=%d closed=%d all=%d, want 1/1/2", len(open), len(closed), len(all))
	}
}

func TestDeleteJob_InUse(t *testing.T) {
	store := memstore.New()
	svc := jobsrv.NewJobService(store.Jobs(), store.Applications())
	ctx := context.Background()

	j, _ := svc.CreateJob(ctx, job.CreateJobRequest{Title: "A"})
	_ = store.Applications().Create(ctx, &application.Application{ID: "a1", Email: "a1@example.com", JobID: j.ID})

	if err := svc.DeleteJob(ctx, j.ID); !errx.IsCode(err, job.CodeJobInUse) {
		t.Errorf("got %v, want job in use", err)
	}

	free, _ := svc.CreateJob(ctx, job.CreateJobRequest{Title: "B"})
	if err := svc.DeleteJob(ctx, free.ID); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.GetJob(ctx, free.ID); !errx.IsCode(err, job.CodeJobNotFound) {
		t.Errorf("deleted job still found: %v", err)
	}
}
