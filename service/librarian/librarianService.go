package librariansvc

import (
	"context"
	"errors"

	"bookcourier/model"
	applicationrepo "bookcourier/repository/application"
)

type ErrCode string

const (
	ErrNotFound       ErrCode = "NOT_FOUND"
	ErrAlreadyApplied ErrCode = "ALREADY_APPLIED"
	ErrAlreadyDecided ErrCode = "ALREADY_DECIDED"
	ErrBadInput       ErrCode = "BAD_INPUT"
)

type codedError struct{ code ErrCode }

func (e codedError) Error() string { return string(e.code) }
func (e codedError) Code() ErrCode { return e.code }
func makeErr(c ErrCode) error      { return codedError{code: c} }

// Code extracts error code
func Code(err error) ErrCode {
	var ce interface{ Code() ErrCode }
	if errors.As(err, &ce) {
		return ce.Code()
	}
	return ""
}

type Repo interface {
	Insert(ctx context.Context, a *model.LibrarianApplication) error
	List(ctx context.Context) ([]model.LibrarianApplication, error)
	Decide(ctx context.Context, id int64, approve bool) (*model.LibrarianApplication, error)
}

type Service interface {
	// Apply files a librarian application for the authenticated user.
	Apply(ctx context.Context, applicantEmail string) (*model.LibrarianApplication, error)

	List(ctx context.Context) ([]model.LibrarianApplication, error)

	// Decide approves or rejects a pending application. Approval promotes
	// the applicant to librarian as part of the same operation.
	Decide(ctx context.Context, id int64, approve bool) (*model.LibrarianApplication, error)
}

type service struct{ r Repo }

func New(r Repo) Service { return &service{r: r} }

func (s *service) Apply(ctx context.Context, applicantEmail string) (*model.LibrarianApplication, error) {
	if applicantEmail == "" {
		return nil, makeErr(ErrBadInput)
	}
	a := &model.LibrarianApplication{ApplicantEmail: applicantEmail}
	if err := s.r.Insert(ctx, a); err != nil {
		if errors.Is(err, applicationrepo.ErrAlreadyApplied) {
			return nil, makeErr(ErrAlreadyApplied)
		}
		return nil, err
	}
	return a, nil
}

func (s *service) List(ctx context.Context) ([]model.LibrarianApplication, error) {
	return s.r.List(ctx)
}

func (s *service) Decide(ctx context.Context, id int64, approve bool) (*model.LibrarianApplication, error) {
	a, err := s.r.Decide(ctx, id, approve)
	if err != nil {
		switch {
		case errors.Is(err, applicationrepo.ErrNotFound):
			return nil, makeErr(ErrNotFound)
		case errors.Is(err, applicationrepo.ErrAlreadyDecided):
			return nil, makeErr(ErrAlreadyDecided)
		default:
			return nil, err
		}
	}
	return a, nil
}
