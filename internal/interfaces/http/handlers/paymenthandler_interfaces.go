package handlers

import (
	"context"

	paymentdto "github.com/orris-inc/backoffice/internal/application/payment/dto"
	"github.com/orris-inc/backoffice/internal/application/payment/usecases"
	"github.com/orris-inc/backoffice/internal/shared/authorization"
)

// Use case interfaces for PaymentHandler

type recordPaymentUseCase interface {
	Execute(ctx context.Context, cmd usecases.RecordPaymentCommand) (*paymentdto.PaymentDTO, error)
}

type markPaymentPaidUseCase interface {
	Execute(ctx context.Context, cmd usecases.MarkPaymentPaidCommand) (*paymentdto.PaymentDTO, error)
}

type markPaymentFailedUseCase interface {
	Execute(ctx context.Context, cmd usecases.MarkPaymentFailedCommand) (*paymentdto.PaymentDTO, error)
}

type refundPaymentUseCase interface {
	Execute(ctx context.Context, cmd usecases.RefundPaymentCommand) (*paymentdto.PaymentDTO, error)
}

type getPaymentUseCase interface {
	Execute(ctx context.Context, scope authorization.Scope, paymentID uint) (*paymentdto.PaymentDTO, error)
}

type listPaymentsUseCase interface {
	Execute(ctx context.Context, query usecases.ListPaymentsQuery) (*usecases.ListPaymentsResult, error)
}
