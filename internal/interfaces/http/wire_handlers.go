package http

import (
	"github.com/orris-inc/backoffice/internal/interfaces/http/handlers"
)

type allHandlers struct {
	subscription *handlers.SubscriptionHandler
	plan         *handlers.PlanHandler
	client       *handlers.ClientHandler
	payment      *handlers.PaymentHandler
	health       *handlers.HealthHandler
}

func (c *Container) initHandlers() {
	u := c.ucs
	h := &allHandlers{}

	h.subscription = handlers.NewSubscriptionHandler(handlers.SubscriptionUseCases{
		Create:  u.createSubscription,
		Update:  u.updateSubscription,
		Cancel:  u.cancelSubscription,
		Renew:   u.renewSubscription,
		Get:     u.getSubscription,
		List:    u.listSubscriptions,
		Stats:   u.subscriptionStats,
		History: u.subscriptionHistory,
		Expire:  u.expireSubscriptions,
	}, c.log)
	h.plan = handlers.NewPlanHandler(u.createPlan, u.updatePlan, u.getPlan, u.listPlans, u.setPlanActive, c.log)
	h.client = handlers.NewClientHandler(u.createClient, u.updateClient, u.changeClientStatus, u.getClient, u.listClients, u.deleteClient, c.log)
	h.payment = handlers.NewPaymentHandler(u.recordPayment, u.markPaymentPaid, u.markPaymentFailed, u.refundPayment, u.getPayment, u.listPayments, c.log)

	if sqlDB, err := c.db.DB(); err == nil {
		h.health = handlers.NewHealthHandler(sqlDB, Version, c.log)
	} else {
		c.log.Warnw("health check has no database handle", "error", err)
		h.health = handlers.NewHealthHandler(unreachableDB{err: err}, Version, c.log)
	}

	c.hdlrs = h
}
