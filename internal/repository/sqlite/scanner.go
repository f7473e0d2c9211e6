package sqlite

// Scanner interface defines the common scanning behavior for both sql.Row and sql.Rows
type Scanner interface {
	Scan(dest ...interface{}) error
}

// Rows interface defines the common behavior for sql.Rows
type Rows interface {
	Next() bool
	Scan(dest ...interface{}) error
	Err() error
}

// ScanSetting scans a single setting from a database row
func ScanSetting(scanner Scanner) (*Setting, error) {
	setting := &Setting{}
	var updatedAt string
	if err := scanner.Scan(&setting.Key, &setting.Value, &updatedAt); err != nil {
		return nil, err
	}

	t, err := ParseTimeFromDB(updatedAt)
	if err != nil {
		return nil, err
	}
	setting.UpdatedAt = t
	return setting, nil
}

// ScanSettings scans multiple settings from database rows
func ScanSettings(rows Rows) ([]*Setting, error) {
	settings := []*Setting{}
	for rows.Next() {
		setting, err := ScanSetting(rows)
		if err != nil {
			return nil, err
		}
		settings = append(settings, setting)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return settings, nil
}
