package mqtt

import "fmt"

// TopicPrefixAdv is the base topic gateways publish advertisement frames to.
const TopicPrefixAdv = "goveewatch/adv"

// Topics provides builders for watcher MQTT topics. Using these helpers
// keeps topic naming consistent between gateways and the watcher.
type Topics struct{}

// Advertisement returns the topic a gateway publishes frames for one device to.
//
// Example: goveewatch/adv/E0:13:D5:71:D0:66
func (Topics) Advertisement(address string) string {
	return fmt.Sprintf("%s/%s", TopicPrefixAdv, address)
}

// AdvertisementWildcard returns the subscription pattern covering all
// advertisement frames from all gateways.
func (Topics) AdvertisementWildcard() string {
	return TopicPrefixAdv + "/#"
}
