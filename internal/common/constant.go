package common

// AuthorizationHeader is the HTTP header used to carry the bearer access
// token on record requests.
const AuthorizationHeader = "Authorization"

// CSVExportFileName is the default file name for the CSV export.
const CSVExportFileName = "CJM_Case_Data.csv"
