package summary

// DefaultHistoryLimit exposes defaultHistoryLimit to the external test package
const DefaultHistoryLimit = defaultHistoryLimit
