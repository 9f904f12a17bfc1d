package fs

import (
	"fmt"
	"os"
)

// backup preserves corrupt store bytes at <path>.backup.<epoch-millis> before
// the store resets to an empty collection. A prior backup is never
// overwritten: the millisecond suffix is bumped until an unused name is found.
// Recovery must never itself fail, so errors are logged and swallowed.
func (s *Store) backup(data []byte) {
	millis := s.now().UnixMilli()
	target := fmt.Sprintf("%s.backup.%d", s.path, millis)
	for {
		if _, err := os.Stat(target); os.IsNotExist(err) {
			break
		}
		millis++
		target = fmt.Sprintf("%s.backup.%d", s.path, millis)
	}

	if err := os.WriteFile(target, data, 0644); err != nil {
		if s.logger != nil {
			s.logger.Warn("failed to back up corrupt store", "target", target, "error", err)
		}
		return
	}

	if s.logger != nil {
		s.logger.Warn("store file was corrupt, backed up and reset", "backup", target)
	}
}
