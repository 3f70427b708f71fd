package services

// ServiceContainer holds instances of all the application services.
// This is the main entry point for accessing service functionality and
// is used throughout the application, particularly in the handlers.
type ServiceContainer struct {
	User               UserSvcFacade
	Token              TokenSvcFacade
	Session            SessionSvcFacade
	Verification       VerificationSvcFacade
	PasswordReset      PasswordResetSvcFacade
	GoogleOAuthHandler GoogleOAuthHandlerSvcFacade
	OAuthBridge        OAuthBridgeSvc
	Progress           ProgressSvcFacade
	Views              ViewSvcFacade
	Contact            ContactSvcFacade
}
