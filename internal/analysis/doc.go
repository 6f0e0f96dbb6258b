// Package analysis proxies betting questions to an OpenAI-compatible
// chat-completion backend with a fixed NBA-analyst system prompt.
package analysis
