package worker

// Task types handled by the expiry-scan worker.
const (
	TaskContractExpiryScan   = "expiry:contracts"
	TaskCredentialExpiryScan = "expiry:credentials"
)

// Both scans run once a day, early enough that the expiring-soon
// warnings land before business hours.
const DefaultScanSchedule = "0 6 * * *"
