package controller

import "errors"

var (
	ErrParseRequest = errors.New("failed to parse request")

	ErrUserRegister  = errors.New("failed to register user")
	ErrGenerateToken = errors.New("failed to generate token")
	ErrUserLogin     = errors.New("failed to login")

	ErrCreateChat      = errors.New("failed to create chat")
	ErrGetChats        = errors.New("failed to get chats")
	ErrGetChat         = errors.New("failed to get chat")
	ErrUpdateChatTitle = errors.New("failed to update chat title")
	ErrDeleteChat      = errors.New("failed to delete chat")
	ErrChatNotFound    = errors.New("chat not found")
	ErrSendMessage     = errors.New("failed to send message")
	ErrInvalidRole     = errors.New("message role must be user")

	ErrCreateInfluencer   = errors.New("failed to create influencer")
	ErrGetInfluencers     = errors.New("failed to get influencers")
	ErrGetInfluencer      = errors.New("failed to get influencer")
	ErrUpdateInfluencer   = errors.New("failed to update influencer")
	ErrDeleteInfluencer   = errors.New("failed to delete influencer")
	ErrInfluencerNotFound = errors.New("influencer not found")

	ErrCreateIdea   = errors.New("failed to create idea")
	ErrGetIdeas     = errors.New("failed to get ideas")
	ErrGetIdea      = errors.New("failed to get idea")
	ErrUpdateIdea   = errors.New("failed to update idea")
	ErrDeleteIdea   = errors.New("failed to delete idea")
	ErrIdeaNotFound = errors.New("idea not found")
	ErrSearchIdeas  = errors.New("failed to search ideas")
	ErrMissingQuery = errors.New("missing search query")

	ErrCreateGenerationJob   = errors.New("failed to create generation job")
	ErrGetGenerationJob      = errors.New("failed to get generation job")
	ErrGetGenerationJobs     = errors.New("failed to get generation jobs")
	ErrGenerationJobNotFound = errors.New("generation job not found")

	ErrGeneratePolicyToken = errors.New("failed to generate policy token")
	ErrGetPreSignedURL     = errors.New("failed to get presigned url")
)
