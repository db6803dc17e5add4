/*
Package xmlcodec implements an XML text codec for CDAP messages, used
for diagnostics and test fixtures. For example, an M_READ_R:

	<cdap-message opcode="M_READ_R" invoke-id="7" flags="F_RD_INCOMPLETE">
	  <object class="flow" name="/dif/flows" instance="3">
	    <value kind="string">qos-cube-1</value>
	  </object>
	  <result code="0"></result>
	</cdap-message>

Byte strings (filters, byte values and the auth "other" value) are
hex encoded.
*/
package xmlcodec
