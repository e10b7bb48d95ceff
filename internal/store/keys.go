package store

// Key prefixes for each collection. Secondary indexes live under their
// own idx: namespace so collection scans never see them.
const (
	userPrefix     = "user:"
	shoutoutPrefix = "shoutout:"
	commentPrefix  = "comment:"
	reportPrefix   = "report:"
	auditPrefix    = "audit:"

	userByEmailPrefix = "idx:users:email:"

	sessionCurrentKey = "session:current"
)

func userKey(id string) []byte {
	return []byte(userPrefix + id)
}

func userByEmailKey(email string) []byte {
	return []byte(userByEmailPrefix + email)
}

func shoutoutKey(id string) []byte {
	return []byte(shoutoutPrefix + id)
}

func commentKey(id string) []byte {
	return []byte(commentPrefix + id)
}

func reportKey(id string) []byte {
	return []byte(reportPrefix + id)
}

func auditKey(id string) []byte {
	return []byte(auditPrefix + id)
}
