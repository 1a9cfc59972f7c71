package http

import (
	clientUsecases "github.com/orris-inc/backoffice/internal/application/client/usecases"
	paymentUsecases "github.com/orris-inc/backoffice/internal/application/payment/usecases"
	subscriptionUsecases "github.com/orris-inc/backoffice/internal/application/subscription/usecases"
	"github.com/orris-inc/backoffice/internal/infrastructure/adapters"
	"github.com/orris-inc/backoffice/internal/infrastructure/email"
	"github.com/orris-inc/backoffice/internal/infrastructure/hrmssync"
)

type allUseCases struct {
	// subscriptions
	createSubscription  *subscriptionUsecases.CreateSubscriptionUseCase
	updateSubscription  *subscriptionUsecases.UpdateSubscriptionUseCase
	cancelSubscription  *subscriptionUsecases.CancelSubscriptionUseCase
	renewSubscription   *subscriptionUsecases.RenewSubscriptionUseCase
	getSubscription     *subscriptionUsecases.GetSubscriptionUseCase
	listSubscriptions   *subscriptionUsecases.ListSubscriptionsUseCase
	subscriptionStats   *subscriptionUsecases.GetSubscriptionStatsUseCase
	subscriptionHistory *subscriptionUsecases.ListSubscriptionHistoryUseCase
	expireSubscriptions *subscriptionUsecases.ExpireSubscriptionsUseCase

	// plans
	createPlan    *subscriptionUsecases.CreatePlanUseCase
	updatePlan    *subscriptionUsecases.UpdatePlanUseCase
	setPlanActive *subscriptionUsecases.SetPlanActiveUseCase
	getPlan       *subscriptionUsecases.GetPlanUseCase
	listPlans     *subscriptionUsecases.ListPlansUseCase

	// clients
	createClient       *clientUsecases.CreateClientUseCase
	updateClient       *clientUsecases.UpdateClientUseCase
	changeClientStatus *clientUsecases.ChangeClientStatusUseCase
	getClient          *clientUsecases.GetClientUseCase
	listClients        *clientUsecases.ListClientsUseCase
	deleteClient       *clientUsecases.DeleteClientUseCase

	// payments
	recordPayment     *paymentUsecases.RecordPaymentUseCase
	markPaymentPaid   *paymentUsecases.MarkPaymentPaidUseCase
	markPaymentFailed *paymentUsecases.MarkPaymentFailedUseCase
	refundPayment     *paymentUsecases.RefundPaymentUseCase
	getPayment        *paymentUsecases.GetPaymentUseCase
	listPayments      *paymentUsecases.ListPaymentsUseCase
}

func (c *Container) initUseCases() {
	r := c.repos
	log := c.log
	u := &allUseCases{}

	u.createSubscription = subscriptionUsecases.NewCreateSubscriptionUseCase(r.subscriptionRepo, r.planRepo, r.historyRepo, r.loader, r.txMgr, log)
	u.updateSubscription = subscriptionUsecases.NewUpdateSubscriptionUseCase(r.subscriptionRepo, r.planRepo, r.historyRepo, r.loader, r.txMgr, log)
	u.cancelSubscription = subscriptionUsecases.NewCancelSubscriptionUseCase(r.subscriptionRepo, r.planRepo, r.historyRepo, r.loader, r.txMgr, log)
	u.renewSubscription = subscriptionUsecases.NewRenewSubscriptionUseCase(r.subscriptionRepo, r.planRepo, r.historyRepo, r.loader, r.txMgr, log)
	u.getSubscription = subscriptionUsecases.NewGetSubscriptionUseCase(r.loader, log)
	u.listSubscriptions = subscriptionUsecases.NewListSubscriptionsUseCase(r.subscriptionRepo, log)
	u.subscriptionStats = subscriptionUsecases.NewGetSubscriptionStatsUseCase(r.subscriptionRepo, log)
	u.subscriptionHistory = subscriptionUsecases.NewListSubscriptionHistoryUseCase(r.loader, r.historyRepo, log)
	u.expireSubscriptions = subscriptionUsecases.NewExpireSubscriptionsUseCase(r.subscriptionRepo, log)

	u.createPlan = subscriptionUsecases.NewCreatePlanUseCase(r.planRepo, log)
	u.updatePlan = subscriptionUsecases.NewUpdatePlanUseCase(r.planRepo, log)
	u.setPlanActive = subscriptionUsecases.NewSetPlanActiveUseCase(r.planRepo, log)
	u.getPlan = subscriptionUsecases.NewGetPlanUseCase(r.planRepo, log)
	u.listPlans = subscriptionUsecases.NewListPlansUseCase(r.planRepo, log)

	u.createClient = clientUsecases.NewCreateClientUseCase(r.clientRepo, log)
	u.updateClient = clientUsecases.NewUpdateClientUseCase(r.clientRepo, log)
	u.changeClientStatus = clientUsecases.NewChangeClientStatusUseCase(r.clientRepo, log)
	u.getClient = clientUsecases.NewGetClientUseCase(r.clientRepo, log)
	u.listClients = clientUsecases.NewListClientsUseCase(r.clientRepo, log)
	u.deleteClient = clientUsecases.NewDeleteClientUseCase(r.clientRepo, r.subscriptionRepo, r.txMgr, log)

	u.recordPayment = paymentUsecases.NewRecordPaymentUseCase(r.paymentRepo, r.subscriptionRepo, r.historyRepo, r.loader, r.txMgr, c.cfg.Billing.Currency, log)
	u.markPaymentPaid = paymentUsecases.NewMarkPaymentPaidUseCase(r.paymentRepo, r.subscriptionRepo, r.historyRepo, r.loader, r.txMgr, log)
	u.markPaymentFailed = paymentUsecases.NewMarkPaymentFailedUseCase(r.paymentRepo, r.subscriptionRepo, r.historyRepo, r.loader, r.txMgr, log)
	u.refundPayment = paymentUsecases.NewRefundPaymentUseCase(r.paymentRepo, r.subscriptionRepo, r.historyRepo, r.loader, r.txMgr, log)
	u.getPayment = paymentUsecases.NewGetPaymentUseCase(r.paymentRepo, r.loader, log)
	u.listPayments = paymentUsecases.NewListPaymentsUseCase(r.paymentRepo, log)

	c.ucs = u
}

// initNotifiers attaches email and HRMS sync to the mutating use cases.
// Unconfigured collaborators stay nil interfaces so the notifier skips them.
func (c *Container) initNotifiers() {
	var mailer adapters.Mailer
	if c.cfg.Email.Enabled() {
		mailer = email.NewSMTPEmailService(c.cfg.Email)
	}
	var pusher adapters.SnapshotPusher
	if c.cfg.HRMS.Enabled() {
		pusher = hrmssync.NewClient(c.cfg.HRMS, c.log.Named("hrmssync"))
	}
	if mailer == nil && pusher == nil {
		c.log.Infow("billing notifications disabled")
		return
	}

	notifier := adapters.NewBillingNotifier(mailer, pusher, c.cfg.Billing.Currency, c.log.Named("notifier"))
	u := c.ucs

	u.createSubscription.SetSubscriptionNotifier(notifier)
	u.updateSubscription.SetSubscriptionNotifier(notifier)
	u.cancelSubscription.SetSubscriptionNotifier(notifier)
	u.renewSubscription.SetSubscriptionNotifier(notifier)

	u.recordPayment.SetReceiptNotifier(notifier)
	u.recordPayment.SetSubscriptionNotifier(notifier)
	u.markPaymentPaid.SetReceiptNotifier(notifier)
	u.markPaymentPaid.SetSubscriptionNotifier(notifier)
	u.markPaymentFailed.SetSubscriptionNotifier(notifier)
	u.refundPayment.SetSubscriptionNotifier(notifier)

	c.log.Infow("billing notifications enabled", "email", mailer != nil, "hrms_sync", pusher != nil)
}
