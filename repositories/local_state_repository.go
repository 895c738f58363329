package repositories

import "PinguinAgent/models"

// LocalStateRepository persists the agent's own state on the device: the last
// published blocked set (so enforcement survives restarts) and the pass
// journal served by the status endpoint.
type LocalStateRepository interface {
	SaveBlockedSet(appPackages []string) error
	LoadBlockedSet() ([]string, error)
	SavePass(pass models.SyncPass) error
	LatestPass() (models.SyncPass, error)
}
