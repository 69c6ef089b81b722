package database

type DriverEnum string

const (
	POSTGRES DriverEnum = "postgres"
	MYSQL    DriverEnum = "mysql"
)

func (e DriverEnum) ToString() string {
	switch e {
	case POSTGRES:
		return "postgres"
	case MYSQL:
		return "mysql"
	default:
		return ""
	}
}

func (e DriverEnum) IsValid() bool {
	switch e {
	case POSTGRES, MYSQL:
		return true
	}
	return false
}
