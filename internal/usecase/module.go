package usecase

import "go.uber.org/fx"

// Module provides the portal use cases to the fx container.
var Module = fx.Provide(
	NewSessionUseCase,
	NewOnboardingUseCase,
	NewAccountUseCase,
	NewPaymentUseCase,
	NewCreditUseCase,
	NewNotificationUseCase,
	NewDashboardUseCase,
	NewAdminUseCase,
)
