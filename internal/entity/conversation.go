package entity

import "strings"

const (
	conversationPrefix = "cust_"
	conversationSuffix = "__admin"
	userChannelPrefix  = "user_"

	// AdminsChannel reaches every connected admin, regardless of the
	// conversation they have open.
	AdminsChannel = "admins"
)

// ConversationKey returns the id shared by every message exchanged between
// customerId and the admin identity.
func ConversationKey(customerId string) string {
	return conversationPrefix + customerId + conversationSuffix
}

// CustomerIdFromKey is the inverse of ConversationKey.
func CustomerIdFromKey(key string) (string, bool) {
	if !strings.HasPrefix(key, conversationPrefix) || !strings.HasSuffix(key, conversationSuffix) {
		return "", false
	}
	id := strings.TrimSuffix(strings.TrimPrefix(key, conversationPrefix), conversationSuffix)
	if id == "" {
		return "", false
	}
	return id, true
}

// UserChannel is the personal notification channel of a participant.
func UserChannel(userId string) string {
	return userChannelPrefix + userId
}
