package response

const CodeServiceUnavailable = "service_unavailable"
