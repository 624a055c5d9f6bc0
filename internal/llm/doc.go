// Package llm provides a provider-agnostic client for large language
// model APIs. Article generation and grounded web search both go through
// the Client; the provider implementation translates requests to and from
// the vendor wire format.
package llm
