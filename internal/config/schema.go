package config

import "database/sql"

// EnsureSchema creates the tables the app needs when they are missing.
// Statements are idempotent so startup is safe against an existing database.
func EnsureSchema(db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id BIGINT AUTO_INCREMENT PRIMARY KEY,
			name VARCHAR(120) NOT NULL,
			email VARCHAR(190) NOT NULL,
			password_hash VARCHAR(100) NOT NULL,
			role VARCHAR(16) NOT NULL DEFAULT 'user',
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			UNIQUE KEY uq_users_email (email)
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
		`CREATE TABLE IF NOT EXISTS schedules (
			id BIGINT AUTO_INCREMENT PRIMARY KEY,
			operator_name VARCHAR(120) NOT NULL,
			origin VARCHAR(120) NOT NULL,
			destination VARCHAR(120) NOT NULL,
			ac_type VARCHAR(10) NOT NULL,
			seat_class VARCHAR(10) NOT NULL,
			total_seats INT NOT NULL,
			fare BIGINT NOT NULL,
			departure_time VARCHAR(8) NOT NULL,
			start_date DATE NOT NULL,
			end_date DATE NOT NULL,
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
			KEY idx_schedules_end_date (end_date)
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
		// The unique key is the ground truth against double booking: two
		// transactions can never both insert the same (schedule, date, seat).
		`CREATE TABLE IF NOT EXISTS schedule_seats (
			id BIGINT AUTO_INCREMENT PRIMARY KEY,
			schedule_id BIGINT NOT NULL,
			travel_date DATE NOT NULL,
			seat_code VARCHAR(8) NOT NULL,
			booked_by BIGINT NOT NULL DEFAULT 0,
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			UNIQUE KEY uq_schedule_seat (schedule_id, travel_date, seat_code),
			KEY idx_schedule_date (schedule_id, travel_date),
			CONSTRAINT fk_seat_schedule FOREIGN KEY (schedule_id)
				REFERENCES schedules(id) ON DELETE CASCADE
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
	}

	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}
